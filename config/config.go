// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

// RetentionConfig holds the sweep windows, in days. RequestDays bounds
// deletion; ReportingDays only bounds the "old requests" counter in the
// summary report.
type RetentionConfig struct {
	CleanupIntervalDays int `mapstructure:"cleanupIntervalDays"`
	RequestDays         int `mapstructure:"requestDays"`
	ReportingDays       int `mapstructure:"reportingDays"`
	NotificationDays    int `mapstructure:"notificationDays"`
	MessageDays         int `mapstructure:"messageDays"`
}

type BackupConfig struct {
	IntervalDays int `mapstructure:"intervalDays"`
	MaxSnapshots int `mapstructure:"maxSnapshots"`
}

type ReportConfig struct {
	// FontPath points at a UTF-8 TTF font used for Arabic text in PDF
	// exports. Empty means the built-in Latin font.
	FontPath string `mapstructure:"fontPath"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	S3        S3Config        `mapstructure:"s3"`
	Retention RetentionConfig `mapstructure:"retention"`
	Backup    BackupConfig    `mapstructure:"backup"`
	Report    ReportConfig    `mapstructure:"report"`
}

// LoadConfig reads config.yaml from path and overlays environment variables.
// A missing file is fine; env vars and defaults cover everything.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("report.fontPath", "REPORT_FONT_PATH")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.dbName", "lane_supply")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("retention.cleanupIntervalDays", 30)
	viper.SetDefault("retention.requestDays", 30)
	viper.SetDefault("retention.reportingDays", 730)
	viper.SetDefault("retention.notificationDays", 7)
	viper.SetDefault("retention.messageDays", 14)
	viper.SetDefault("backup.intervalDays", 7)
	viper.SetDefault("backup.maxSnapshots", 10)

	err = viper.ReadInConfig()
	if err != nil {
		// Only a real parse error is fatal; no file at all is expected in
		// env-only deployments.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"lane-supply-api-server/internal/auth"
	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedUsers writes the fixed account table into the "users" collection on
// first boot, and mirrors the password-less user list into the blob store so
// backup snapshots include it.
func SeedUsers(db *mongo.Database, st *store.Store) error {
	ctx := context.Background()
	userCollection := db.Collection("users")

	count, err := userCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("User accounts already exist. Seeding skipped.")
		return nil
	}

	log.Println("No user accounts found. Seeding the account table...")

	public := []models.PublicUser{}
	for _, cred := range DefaultCredentials() {
		hashed, err := auth.HashPassword(cred.Password)
		if err != nil {
			return err
		}
		user := models.User{
			Username:    cred.Username,
			Password:    hashed,
			Role:        cred.Role,
			DisplayName: cred.DisplayName,
			Avatar:      cred.Avatar,
		}
		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			return err
		}
		public = append(public, user.Public())
	}

	if err := st.SaveUsers(ctx, public); err != nil {
		return err
	}

	log.Printf("Seeded %d user accounts.", len(public))
	return nil
}

// Authenticate checks a username/password pair against the users collection.
// Returns nil on any mismatch, unknown usernames included.
func Authenticate(ctx context.Context, db *mongo.Database, username, password string) (*models.User, error) {
	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, nil
	}
	return &user, nil
}

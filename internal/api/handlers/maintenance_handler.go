// server/internal/api/handlers/maintenance_handler.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"lane-supply-api-server/internal/s3"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

// MaintenanceHandler exposes the retention and backup jobs. Dashboards call
// RunJobs once at session start; the schedule check lives here, not in any
// UI mount timing.
type MaintenanceHandler struct {
	Store    *store.Store
	Uploader *s3.Uploader // nil when no bucket is configured
}

// RunJobs runs whichever scheduled jobs are due. Safe to call any number of
// times: a job that is not due is skipped, and re-running the sweep when
// nothing is old is a no-op.
func (h *MaintenanceHandler) RunJobs(c *gin.Context) {
	username := c.GetString("user_name")
	ctx := c.Request.Context()

	result := gin.H{"cleanup_ran": false, "backup_ran": false}

	if h.Store.ShouldRunCleanup(ctx) {
		cleaned, err := h.Store.CleanupOldData(ctx, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed"})
			return
		}
		result["cleanup_ran"] = true
		result["cleanup"] = cleaned
	}

	if h.Store.ShouldCreateBackup(ctx) {
		backup, err := h.Store.CreateBackup(ctx, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Backup failed"})
			return
		}
		result["backup_ran"] = true
		result["backup_id"] = backup.ID

		if h.Uploader != nil {
			payload, err := json.Marshal(backup)
			if err == nil {
				key := fmt.Sprintf("backups/%s.json", backup.ID)
				if _, err := h.Uploader.UploadSnapshot(ctx, bytes.NewReader(payload), key); err != nil {
					// Off-box copy is best effort; the local snapshot stands.
					log.Printf("Failed to upload backup %s to S3: %v", backup.ID, err)
				}
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetBackups lists the rolling snapshot metadata without the full payloads.
func (h *MaintenanceHandler) GetBackups(c *gin.Context) {
	backups, err := h.Store.Backups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query backups"})
		return
	}

	type backupInfo struct {
		ID        string `json:"id"`
		Version   string `json:"version"`
		CreatedAt string `json:"created_at"`
		CreatedBy string `json:"created_by"`
		Requests  int    `json:"requests"`
	}
	out := make([]backupInfo, 0, len(backups))
	for _, b := range backups {
		out = append(out, backupInfo{
			ID:        b.ID,
			Version:   b.Version,
			CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
			CreatedBy: b.CreatedBy,
			Requests:  len(b.Data.Requests),
		})
	}
	c.JSON(http.StatusOK, out)
}

// RestoreBackup overwrites the live collections from one snapshot.
func (h *MaintenanceHandler) RestoreBackup(c *gin.Context) {
	id := c.Param("id")

	restored, err := h.Store.RestoreBackup(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Restore failed"})
		return
	}
	if !restored {
		c.JSON(http.StatusNotFound, gin.H{"error": "Backup not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

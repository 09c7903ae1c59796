// server/internal/api/handlers/report_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"lane-supply-api-server/config"
	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/report"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Store *store.Store
	Cfg   config.Config
}

// RequestsCSV exports the (optionally filtered) request list.
func (h *ReportHandler) RequestsCSV(c *gin.Context) {
	requests, err := h.Store.FilterRequests(c.Request.Context(), store.RequestFilter{
		Status: models.RequestStatus(c.Query("status")),
		Type:   models.RequestType(c.Query("type")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=requests-"+time.Now().Format("2006-01-02")+".csv")
	if err := report.WriteCSV(c.Writer, report.RequestColumns, report.RequestRows(requests)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
		return
	}
	h.notifyExport(c, "تقرير الطلبات")
}

// RequestsPDF exports the request list as a PDF table.
func (h *ReportHandler) RequestsPDF(c *gin.Context) {
	requests, err := h.Store.FilterRequests(c.Request.Context(), store.RequestFilter{
		Status: models.RequestStatus(c.Query("status")),
		Type:   models.RequestType(c.Query("type")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}

	pdf, err := report.RenderPDF("تقرير الطلبات", report.RequestColumns, report.RequestRows(requests), h.Cfg.Report.FontPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=requests-"+time.Now().Format("2006-01-02")+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
	h.notifyExport(c, "تقرير الطلبات")
}

// InventoryCSV exports the inventory list.
func (h *ReportHandler) InventoryCSV(c *gin.Context) {
	items, err := h.Store.InventoryItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=inventory-"+time.Now().Format("2006-01-02")+".csv")
	if err := report.WriteCSV(c.Writer, report.InventoryColumns, report.InventoryRows(items)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
		return
	}
	h.notifyExport(c, "تقرير المخزون")
}

// InventoryPDF exports the inventory list as a PDF table.
func (h *ReportHandler) InventoryPDF(c *gin.Context) {
	items, err := h.Store.InventoryItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}

	pdf, err := report.RenderPDF("تقرير المخزون", report.InventoryColumns, report.InventoryRows(items), h.Cfg.Report.FontPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=inventory-"+time.Now().Format("2006-01-02")+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
	h.notifyExport(c, "تقرير المخزون")
}

// Summary aggregates the dashboard counters: requests by status and type,
// low-stock items, and requests older than the reporting window. The
// reporting window is a display-only figure; it never drives deletion.
func (h *ReportHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	requests, err := h.Store.Requests(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	lowStock, err := h.Store.LowStockItems(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}

	byStatus := map[models.RequestStatus]int{}
	byType := map[models.RequestType]int{}
	urgent := 0
	old := 0
	reportingCutoff := time.Now().AddDate(0, 0, -h.Cfg.Retention.ReportingDays)
	for _, r := range requests {
		byStatus[r.Status]++
		byType[r.Type]++
		if r.Urgent {
			urgent++
		}
		if r.CreatedAt.Before(reportingCutoff) {
			old++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_requests": len(requests),
		"by_status":      byStatus,
		"by_type":        byType,
		"urgent":         urgent,
		"old_requests":   old,
		"low_stock":      len(lowStock),
	})
}

func (h *ReportHandler) notifyExport(c *gin.Context, reportName string) {
	username := c.GetString("user_name")
	h.Store.Notify(c.Request.Context(), &models.Notification{
		User:    username,
		Title:   "تصدير تقرير",
		Message: fmt.Sprintf("تم تصدير %s", reportName),
		Type:    models.NotifyInfo,
	})
}

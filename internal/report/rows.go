// server/internal/report/rows.go
package report

import (
	"strconv"

	"lane-supply-api-server/internal/models"
)

// Reports project records into flat Arabic-labeled rows with a fixed column
// order before they are handed to the CSV or PDF renderers.

var RequestColumns = []string{
	"رقم الطلب",
	"القسم",
	"اسم الصنف",
	"الكمية",
	"عاجل",
	"الحالة",
	"مقدم الطلب",
	"ملاحظات",
	"رد المراجع",
	"تاريخ الإنشاء",
}

var InventoryColumns = []string{
	"اسم الصنف",
	"الكمية",
	"الحد الأدنى",
	"الموقع",
	"ملاحظات",
	"آخر تحديث",
}

func urgentLabel(urgent bool) string {
	if urgent {
		return "نعم"
	}
	return "لا"
}

const dateLayout = "2006-01-02 15:04"

// RequestRows projects requests in the fixed column order.
func RequestRows(requests []models.Request) [][]string {
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{
			r.ID,
			r.Type.Label(),
			r.ItemName,
			strconv.Itoa(int(r.Quantity)),
			urgentLabel(r.Urgent),
			r.Status.Label(),
			r.UserName,
			r.Notes,
			r.ResponseNotes,
			r.CreatedAt.Format(dateLayout),
		})
	}
	return rows
}

// InventoryRows projects inventory items in the fixed column order.
func InventoryRows(items []models.InventoryItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.MinQuantity),
			it.Location,
			it.Notes,
			it.UpdatedAt.Format(dateLayout),
		})
	}
	return rows
}

package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ParkSys/Billing"
	"ParkSys/Models"
)

// AnalyticsController handles dashboard statistics endpoints. Every figure is
// an aggregate over the real vehicle and invoice tables.
type AnalyticsController struct {
	DB *gorm.DB
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// DashboardSummary holds today's facility totals.
type DashboardSummary struct {
	VehiclesToday  int64 `json:"vehicles_today"`
	VehiclesInside int64 `json:"vehicles_inside"`
	RevenueToday   int64 `json:"revenue_today"`
	InvoicesToday  int64 `json:"invoices_today"`
}

// Summary returns today's occupancy and revenue totals.
// GET /api/analytics/summary
func (c *AnalyticsController) Summary(ctx *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	dayPrefix := now.Format(Billing.DayFormat) + "%"

	var summary DashboardSummary

	c.DB.Model(&Models.Vehicle{}).
		Where("entry_time >= ? AND entry_time < ?", start, end).
		Count(&summary.VehiclesToday)

	c.DB.Model(&Models.Vehicle{}).
		Where("is_inside = ?", true).
		Count(&summary.VehiclesInside)

	c.DB.Model(&Models.Invoice{}).
		Where("invoice_number LIKE ?", dayPrefix).
		Count(&summary.InvoicesToday)

	c.DB.Model(&Models.Invoice{}).
		Where("invoice_number LIKE ?", dayPrefix).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.RevenueToday)

	return ctx.JSON(summary)
}

// RevenueByClass returns today's revenue grouped by vehicle class.
// GET /api/analytics/revenue-by-class
func (c *AnalyticsController) RevenueByClass(ctx *fiber.Ctx) error {
	type ClassRevenue struct {
		VehicleClass string `json:"vehicle_class"`
		Invoices     int64  `json:"invoices"`
		Revenue      int64  `json:"revenue"`
	}

	dayPrefix := time.Now().Format(Billing.DayFormat) + "%"

	var rows []ClassRevenue
	result := c.DB.Model(&Models.Invoice{}).
		Joins("JOIN vehicles ON vehicles.id = invoices.vehicle_id").
		Where("invoices.invoice_number LIKE ?", dayPrefix).
		Select("vehicles.vehicle_class AS vehicle_class, COUNT(invoices.id) AS invoices, COALESCE(SUM(invoices.total_amount), 0) AS revenue").
		Group("vehicles.vehicle_class").
		Scan(&rows)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute revenue by class",
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"classes": rows,
	})
}

// DailyRevenue returns revenue per day over the last N days (default 7).
// GET /api/analytics/daily-revenue?days=7
func (c *AnalyticsController) DailyRevenue(ctx *fiber.Ctx) error {
	days := ctx.QueryInt("days", 7)
	if days < 1 || days > 90 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "days must be between 1 and 90",
		})
	}

	type DayRevenue struct {
		Day      string `json:"day"`
		Invoices int64  `json:"invoices"`
		Revenue  int64  `json:"revenue"`
	}

	// One day per entry even when no invoices were issued.
	now := time.Now()
	results := make([]DayRevenue, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		prefix := date.Format(Billing.DayFormat) + "%"

		var entry DayRevenue
		entry.Day = date.Format("2006-01-02")
		c.DB.Model(&Models.Invoice{}).
			Where("invoice_number LIKE ?", prefix).
			Count(&entry.Invoices)
		c.DB.Model(&Models.Invoice{}).
			Where("invoice_number LIKE ?", prefix).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&entry.Revenue)
		results = append(results, entry)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"days":    results,
	})
}

package Controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"ParkSys/Billing"
	"ParkSys/Models"
)

// InvoiceController handles invoice-related API endpoints
type InvoiceController struct {
	DB *gorm.DB
}

// NewInvoiceController creates a new InvoiceController
func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

// GetInvoices lists invoices, optionally restricted to one issue date.
// GET /api/invoices?date=2026-08-28
func (c *InvoiceController) GetInvoices(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Vehicle").Order("id ASC")

	if dateStr := ctx.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("invoice_number LIKE ?", date.Format(Billing.DayFormat)+"%")
	}

	var invoices []Models.Invoice
	if result := query.Find(&invoices); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve invoices",
		})
	}
	return ctx.JSON(fiber.Map{
		"success":  true,
		"invoices": invoices,
	})
}

// GetInvoice retrieves a single invoice by its invoice number.
// GET /api/invoices/:number
func (c *InvoiceController) GetInvoice(ctx *fiber.Ctx) error {
	var invoice Models.Invoice
	result := c.DB.Preload("Vehicle").
		Where("invoice_number = ?", ctx.Params("number")).
		First(&invoice)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}
	return ctx.JSON(invoice)
}

// DailyReport streams the invoices of one day as an Excel workbook.
// GET /api/invoices/report?date=2026-08-28 (defaults to today)
func (c *InvoiceController) DailyReport(ctx *fiber.Ctx) error {
	date := time.Now()
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date format. Use YYYY-MM-DD",
			})
		}
		date = parsed
	}
	day := date.Format(Billing.DayFormat)

	var invoices []Models.Invoice
	result := c.DB.Preload("Vehicle").
		Where("invoice_number LIKE ?", day+"%").
		Order("id ASC").
		Find(&invoices)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve invoices",
		})
	}

	buffer, err := buildInvoiceWorkbook(invoices)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report", "message": err.Error(),
		})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoices_%s.xlsx"`, day))
	return ctx.Send(buffer.Bytes())
}

// buildInvoiceWorkbook converts invoice rows to an Excel workbook.
func buildInvoiceWorkbook(invoices []Models.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Invoices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Invoice Number", "Issued At", "License Plate", "Vehicle Class",
		"Owner Name", "Entry Time", "Exit Time", "Parking Minutes", "Total Amount",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	}

	for rowIndex, invoice := range invoices {
		row := rowIndex + 2 // Start from row 2 (after headers)
		values := []interface{}{
			invoice.InvoiceNumber,
			invoice.IssuedAt.Format("2006-01-02 15:04:05"),
			invoice.Vehicle.LicensePlate,
			invoice.Vehicle.VehicleClass,
			invoice.Vehicle.OwnerName,
			formatTime(invoice.Vehicle.EntryTime),
			formatTime(invoice.Vehicle.ExitTime),
			invoice.ParkingMinutes,
			invoice.TotalAmount,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 20)
	}

	if deleteIndex, err := f.GetSheetIndex("Sheet1"); err == nil && deleteIndex != -1 {
		f.DeleteSheet("Sheet1")
	}

	buffer := new(bytes.Buffer)
	if err := f.Write(buffer); err != nil {
		return nil, fmt.Errorf("error writing workbook: %v", err)
	}
	return buffer, nil
}

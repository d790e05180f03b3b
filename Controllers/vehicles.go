package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ParkSys/Billing"
	"ParkSys/Models"
)

// VehicleController handles vehicle session API endpoints
type VehicleController struct {
	DB *gorm.DB
}

// NewVehicleController creates a new VehicleController
func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

// RegisterEntry registers a vehicle entering the facility. Creates the
// vehicle row on first sight, reuses it on re-entry, and opens a zero-amount
// invoice in the same transaction. A vehicle already inside is rejected with
// its unchanged session.
// POST /api/vehicles/entry/:license_plate
func (c *VehicleController) RegisterEntry(ctx *fiber.Ctx) error {
	plate := Models.NormalizePlate(ctx.Params("license_plate"))
	if plate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "License plate is required",
		})
	}

	// Entry details are optional; the booth may register a plate alone.
	var input Models.VehicleEntryRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&input); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid request body",
				"message": err.Error(),
			})
		}
	}
	if messages := ValidateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Validation failed",
			"messages": messages,
		})
	}

	class, rate := Models.ResolveClass(input.VehicleClass)
	now := time.Now()

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Transaction error", "message": tx.Error.Error(),
		})
	}

	var vehicle Models.Vehicle
	err := tx.Where("license_plate = ?", plate).First(&vehicle).Error

	switch {
	case err == nil && vehicle.IsInside:
		tx.Rollback()
		return c.rejectDuplicateEntry(ctx, plate)

	case err == nil:
		// Re-entry of a known plate: reuse the row. The is_inside guard in
		// the WHERE clause is the compare-and-swap that loses cleanly to a
		// concurrent entry on the same row.
		updates := map[string]interface{}{
			"vehicle_class": class,
			"base_rate":     rate,
			"is_inside":     true,
			"entry_time":    now,
			"exit_time":     nil,
			"status":        Models.StatusInside,
		}
		if input.OwnerName != "" {
			updates["owner_name"] = input.OwnerName
		}
		if input.Phone != "" {
			updates["phone"] = input.Phone
		}
		result := tx.Model(&Models.Vehicle{}).
			Where("id = ? AND is_inside = ?", vehicle.ID, false).
			Updates(updates)
		if result.Error != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to register entry", "message": result.Error.Error(),
			})
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return c.rejectDuplicateEntry(ctx, plate)
		}
		vehicle.VehicleClass = class
		vehicle.BaseRate = rate
		vehicle.IsInside = true
		vehicle.EntryTime = &now
		vehicle.ExitTime = nil
		vehicle.Status = Models.StatusInside
		if input.OwnerName != "" {
			vehicle.OwnerName = input.OwnerName
		}
		if input.Phone != "" {
			vehicle.Phone = input.Phone
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		vehicle = Models.Vehicle{
			LicensePlate: plate,
			VehicleClass: class,
			OwnerName:    input.OwnerName,
			Phone:        input.Phone,
			IsInside:     true,
			EntryTime:    &now,
			BaseRate:     rate,
			Status:       Models.StatusInside,
		}
		if createErr := tx.Create(&vehicle).Error; createErr != nil {
			tx.Rollback()
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// A concurrent entry for the same unseen plate won the
				// partial unique index race.
				return c.rejectDuplicateEntry(ctx, plate)
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to register entry", "message": createErr.Error(),
			})
		}

	default:
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error", "message": err.Error(),
		})
	}

	invoice, err := Billing.OpenInvoice(tx, vehicle.ID, now)
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open invoice", "message": err.Error(),
		})
	}

	Models.RecordAudit(tx, Models.AuditVehicleEntry, plate, actingUser(ctx), map[string]interface{}{
		"vehicle_id":     vehicle.ID,
		"vehicle_class":  class,
		"invoice_number": invoice.InvoiceNumber,
	})

	if err := tx.Commit().Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.rejectDuplicateEntry(ctx, plate)
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction", "message": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Vehicle entry registered",
		"vehicle": Models.NewVehicleResponse(vehicle, invoice),
	})
}

// rejectDuplicateEntry answers an entry attempt for a plate that is already
// inside: 409 carrying the existing session untouched, so the caller can tell
// it apart from both success and a missing vehicle.
func (c *VehicleController) rejectDuplicateEntry(ctx *fiber.Ctx, plate string) error {
	var vehicle Models.Vehicle
	if err := c.DB.Where("license_plate = ?", plate).First(&vehicle).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error", "message": err.Error(),
		})
	}
	return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
		"success": false,
		"message": "Vehicle is already inside. A new entry is not allowed.",
		"vehicle": Models.NewVehicleResponse(vehicle, Models.LatestInvoice(c.DB, vehicle.ID)),
	})
}

// RegisterExit closes an open session: computes the fee from the elapsed
// minutes, stamps the exit on the vehicle and fills in its latest invoice,
// all in one transaction.
// PUT /api/vehicles/exit/:license_plate
func (c *VehicleController) RegisterExit(ctx *fiber.Ctx) error {
	plate := Models.NormalizePlate(ctx.Params("license_plate"))
	if plate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "License plate is required",
		})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Transaction error", "message": tx.Error.Error(),
		})
	}

	var vehicle Models.Vehicle
	err := tx.Where("license_plate = ? AND is_inside = ?", plate, true).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vehicle not found or not currently inside",
		})
	}
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error", "message": err.Error(),
		})
	}
	if vehicle.EntryTime == nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Vehicle has no registered entry time",
		})
	}

	now := time.Now()
	minutes := int(now.Sub(*vehicle.EntryTime).Minutes())
	amount := Billing.CalculateFee(vehicle.BaseRate, minutes)

	result := tx.Model(&Models.Vehicle{}).
		Where("id = ? AND is_inside = ?", vehicle.ID, true).
		Updates(map[string]interface{}{
			"is_inside": false,
			"exit_time": now,
			"status":    Models.StatusExited,
		})
	if result.Error != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register exit", "message": result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		// A concurrent exit already closed the session.
		tx.Rollback()
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vehicle not found or not currently inside",
		})
	}

	invoice, err := Billing.CloseInvoice(tx, vehicle.ID, amount, minutes)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, Billing.ErrNoInvoice) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No invoice found for vehicle",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update invoice", "message": err.Error(),
		})
	}

	Models.RecordAudit(tx, Models.AuditVehicleExit, plate, actingUser(ctx), map[string]interface{}{
		"vehicle_id":      vehicle.ID,
		"invoice_number":  invoice.InvoiceNumber,
		"total_amount":    amount,
		"parking_minutes": minutes,
	})

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction", "message": err.Error(),
		})
	}

	vehicle.IsInside = false
	vehicle.ExitTime = &now
	vehicle.Status = Models.StatusExited

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Vehicle exit registered and invoice updated",
		"vehicle": Models.NewVehicleResponse(vehicle, invoice),
	})
}

// GetActiveVehicles lists vehicles currently inside, each with its latest
// invoice.
// GET /api/vehicles/active
func (c *VehicleController) GetActiveVehicles(ctx *fiber.Ctx) error {
	var vehicles []Models.Vehicle
	result := c.DB.Where("is_inside = ?", true).Order("id ASC").Find(&vehicles)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve vehicles",
		})
	}
	return ctx.JSON(fiber.Map{
		"success":  true,
		"vehicles": c.buildResponses(vehicles),
	})
}

// GetTodayVehicles lists vehicles whose entry falls on the server's current
// calendar date.
// GET /api/vehicles/today
func (c *VehicleController) GetTodayVehicles(ctx *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var vehicles []Models.Vehicle
	result := c.DB.Where("entry_time >= ? AND entry_time < ?", start, end).
		Order("id ASC").
		Find(&vehicles)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve vehicles",
		})
	}
	return ctx.JSON(fiber.Map{
		"success":  true,
		"vehicles": c.buildResponses(vehicles),
	})
}

// GetVehicleHistory lists every vehicle row with its latest invoice.
// GET /api/vehicles/history
func (c *VehicleController) GetVehicleHistory(ctx *fiber.Ctx) error {
	var vehicles []Models.Vehicle
	result := c.DB.Order("id ASC").Find(&vehicles)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve vehicle history",
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"history": c.buildResponses(vehicles),
	})
}

// EstimateStay quotes what a stay of the given length would cost. Uses the
// front-desk estimator, not the exit billing formula.
// GET /api/vehicles/estimate?vehicle_type=car&minutes=90
func (c *VehicleController) EstimateStay(ctx *fiber.Ctx) error {
	minutes, err := strconv.Atoi(ctx.Query("minutes", "0"))
	if err != nil || minutes < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid minutes value",
		})
	}
	class, _ := Models.ResolveClass(ctx.Query("vehicle_type"))
	return ctx.JSON(fiber.Map{
		"vehicle_class":    class,
		"minutes":          minutes,
		"estimated_amount": Billing.EstimateCharge(class, minutes),
	})
}

func (c *VehicleController) buildResponses(vehicles []Models.Vehicle) []Models.VehicleResponse {
	responses := make([]Models.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, Models.NewVehicleResponse(v, Models.LatestInvoice(c.DB, v.ID)))
	}
	return responses
}

// actingUser returns the authenticated username for audit fields, empty when
// the route ran without auth.
func actingUser(ctx *fiber.Ctx) string {
	if user, ok := ctx.Locals("user").(Models.User); ok {
		return user.Username
	}
	return ""
}

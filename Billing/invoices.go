package Billing

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ParkSys/Models"
)

// ErrNoInvoice is returned by CloseInvoice when the vehicle has no invoice to
// close. Unreachable as long as every accepted entry opens one.
var ErrNoInvoice = errors.New("no invoice found for vehicle")

// OpenInvoice creates the zero-amount invoice that accompanies an accepted
// entry. Runs inside the caller's transaction. The unique constraint on
// invoice_number is the last line of defense; a collision there means the
// counter was bypassed, so the number is reallocated and the insert retried
// a bounded number of times.
func OpenInvoice(tx *gorm.DB, vehicleID uint, issuedAt time.Time) (*Models.Invoice, error) {
	var lastErr error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := NextInvoiceNumber(tx, issuedAt)
		if err != nil {
			return nil, err
		}
		invoice := Models.Invoice{
			InvoiceNumber:  number,
			IssuedAt:       issuedAt,
			VehicleID:      vehicleID,
			TotalAmount:    0,
			ParkingMinutes: 0,
		}
		err = tx.Create(&invoice).Error
		if err == nil {
			return &invoice, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// CloseInvoice fills in the amount and minutes on the vehicle's most recent
// invoice. Runs inside the caller's transaction.
func CloseInvoice(tx *gorm.DB, vehicleID uint, amount int64, minutes int) (*Models.Invoice, error) {
	var invoice Models.Invoice
	err := tx.Where("vehicle_id = ?", vehicleID).
		Order("id DESC").
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoInvoice
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"total_amount":    amount,
		"parking_minutes": minutes,
	}
	if err := tx.Model(&invoice).Updates(updates).Error; err != nil {
		return nil, err
	}
	invoice.TotalAmount = amount
	invoice.ParkingMinutes = minutes
	return &invoice, nil
}

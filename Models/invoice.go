package Models

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model
	InvoiceNumber  string    `json:"invoice_number" gorm:"size:20;not null;uniqueIndex:uk_invoices_number"`
	IssuedAt       time.Time `json:"issued_at" gorm:"not null"`
	VehicleID      uint      `json:"vehicle_id" gorm:"not null;index"`
	TotalAmount    int64     `json:"total_amount" gorm:"not null;default:0"`
	ParkingMinutes int       `json:"parking_minutes" gorm:"not null;default:0"`

	// Relationship
	Vehicle Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

// InvoiceSequence is the per-day counter behind invoice numbering. One row per
// calendar day, incremented under a row lock so two invoices issued the same
// day can never share a number.
type InvoiceSequence struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Day       string    `json:"day" gorm:"size:8;not null;uniqueIndex:uk_invoice_sequences_day"`
	LastValue int64     `json:"last_value" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package Models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Vehicle status display strings, kept in lockstep with IsInside.
const (
	StatusInside = "inside"
	StatusExited = "exited"
)

// Vehicle classes known to the rate table.
const (
	ClassCar        = "car"
	ClassMotorcycle = "motorcycle"
)

// classRates maps a vehicle class to its base hourly rate.
var classRates = map[string]int64{
	ClassCar:        3000,
	ClassMotorcycle: 2000,
}

// classAliases accepts the Spanish labels the legacy clients still send.
var classAliases = map[string]string{
	"carro": ClassCar,
	"moto":  ClassMotorcycle,
}

type Vehicle struct {
	gorm.Model
	LicensePlate string     `json:"license_plate" gorm:"size:20;not null;index"`
	VehicleClass string     `json:"vehicle_class" gorm:"size:20;not null"`
	OwnerName    string     `json:"owner_name" gorm:"size:255"`
	Phone        string     `json:"phone" gorm:"size:50"`
	IsInside     bool       `json:"is_inside" gorm:"not null;default:false"`
	EntryTime    *time.Time `json:"entry_time"`
	ExitTime     *time.Time `json:"exit_time"`
	BaseRate     int64      `json:"base_rate" gorm:"not null;default:0"`
	Status       string     `json:"status" gorm:"size:30"`

	// Relationships
	Invoices []Invoice `json:"invoices,omitempty" gorm:"foreignKey:VehicleID"`
}

// NormalizePlate uppercases and trims a plate so "abc 123" and "ABC 123"
// address the same vehicle.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// ResolveClass maps a requested class to a canonical class and its base rate.
// Unknown classes fall back to car rather than failing; the legacy clients
// send free-form labels and the booth cannot turn a vehicle away over one.
func ResolveClass(class string) (string, int64) {
	c := strings.ToLower(strings.TrimSpace(class))
	if canonical, ok := classAliases[c]; ok {
		c = canonical
	}
	if rate, ok := classRates[c]; ok {
		return c, rate
	}
	return ClassCar, classRates[ClassCar]
}

type VehicleEntryRequest struct {
	VehicleClass string `json:"vehicle_type"`
	OwnerName    string `json:"owner_name" validate:"omitempty,max=255"`
	Phone        string `json:"phone" validate:"omitempty,max=50"`
}

// VehicleResponse is a vehicle row merged with its latest invoice, the shape
// every listing and entry/exit response uses.
type VehicleResponse struct {
	ID           uint       `json:"id"`
	LicensePlate string     `json:"license_plate"`
	VehicleClass string     `json:"vehicle_class"`
	OwnerName    string     `json:"owner_name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	IsInside     bool       `json:"is_inside"`
	EntryTime    *time.Time `json:"entry_time"`
	ExitTime     *time.Time `json:"exit_time"`
	BaseRate     int64      `json:"base_rate"`
	Status       string     `json:"status"`

	// Latest invoice fields
	InvoiceNumber  string `json:"invoice_number,omitempty"`
	TotalAmount    int64  `json:"total_amount"`
	ParkingMinutes int    `json:"parking_minutes"`
}

// NewVehicleResponse merges a vehicle with its latest invoice. The invoice may
// be nil for rows written before invoicing existed.
func NewVehicleResponse(v Vehicle, inv *Invoice) VehicleResponse {
	resp := VehicleResponse{
		ID:           v.ID,
		LicensePlate: v.LicensePlate,
		VehicleClass: v.VehicleClass,
		OwnerName:    v.OwnerName,
		Phone:        v.Phone,
		IsInside:     v.IsInside,
		EntryTime:    v.EntryTime,
		ExitTime:     v.ExitTime,
		BaseRate:     v.BaseRate,
		Status:       v.Status,
	}
	if inv != nil {
		resp.InvoiceNumber = inv.InvoiceNumber
		resp.TotalAmount = inv.TotalAmount
		resp.ParkingMinutes = inv.ParkingMinutes
	}
	return resp
}

// LatestInvoice returns the most recently created invoice for a vehicle, or
// nil if it has none.
func LatestInvoice(db *gorm.DB, vehicleID uint) *Invoice {
	var inv Invoice
	result := db.Where("vehicle_id = ?", vehicleID).Order("id DESC").First(&inv)
	if result.Error != nil {
		return nil
	}
	return &inv
}

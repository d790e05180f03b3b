package Models

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded for session lifecycle events.
const (
	AuditVehicleEntry = "vehicle_entry"
	AuditVehicleExit  = "vehicle_exit"
)

// AuditLog is a write-only trail of who did what at the booth. Nothing in the
// session or billing rules reads it back.
type AuditLog struct {
	gorm.Model
	Action       string         `json:"action" gorm:"size:50;not null;index"`
	LicensePlate string         `json:"license_plate" gorm:"size:20;index"`
	PerformedBy  string         `json:"performed_by" gorm:"size:100"`
	Details      datatypes.JSON `json:"details"`
}

// RecordAudit appends an audit row inside the caller's transaction. Marshal
// failures are logged and skipped; an audit hiccup must not fail the booth
// operation itself.
func RecordAudit(tx *gorm.DB, action, plate, performedBy string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Println("audit: failed to marshal details:", err)
		payload = []byte("{}")
	}
	entry := AuditLog{
		Action:       action,
		LicensePlate: plate,
		PerformedBy:  performedBy,
		Details:      datatypes.JSON(payload),
	}
	if err := tx.Create(&entry).Error; err != nil {
		log.Println("audit: failed to record entry:", err)
	}
}

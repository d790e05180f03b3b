package Billing

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ParkSys/Models"
)

// Invoice number layout: YYYYMMDD date prefix + zero-padded daily sequence.
const (
	DayFormat      = "20060102"
	SequenceWidth  = 4
	numberAttempts = 3
)

// NextInvoiceNumber allocates the next invoice number for the given issue
// time. It must be called inside the transaction that also writes the invoice
// row: the per-day counter row is read and bumped under a row lock, so the
// "read max, add one" step and the invoice insert commit as one atomic unit.
func NextInvoiceNumber(tx *gorm.DB, issuedAt time.Time) (string, error) {
	day := issuedAt.Format(DayFormat)

	var seq Models.InvoiceSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("day = ?", day).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First invoice of the day. Seed from any numbers already carrying
		// today's prefix so a counter wiped or predating this scheme picks
		// up where the existing rows left off.
		seq = Models.InvoiceSequence{Day: day, LastValue: lastIssuedSequence(tx, day)}
		if createErr := tx.Create(&seq).Error; createErr != nil {
			if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return "", createErr
			}
			// Lost the creation race; lock the winner's row instead.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("day = ?", day).
				First(&seq).Error; err != nil {
				return "", err
			}
		}
	} else if err != nil {
		return "", err
	}

	seq.LastValue++
	if err := tx.Model(&Models.InvoiceSequence{}).
		Where("id = ?", seq.ID).
		Update("last_value", seq.LastValue).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%0*d", day, SequenceWidth, seq.LastValue), nil
}

// lastIssuedSequence scans existing invoice numbers with the day's prefix and
// returns the highest suffix, 0 when there are none or the suffix does not
// parse.
func lastIssuedSequence(tx *gorm.DB, day string) int64 {
	var last Models.Invoice
	err := tx.Where("invoice_number LIKE ?", day+"%").
		Order("id DESC").
		First(&last).Error
	if err != nil {
		return 0
	}
	suffix := last.InvoiceNumber[len(day):]
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

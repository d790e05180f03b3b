package Billing

import "ParkSys/Models"

// Duration discounts applied by the stay estimator.
const (
	halfDayMinutes = 12 * 60
	fullDayMinutes = 24 * 60
)

// EstimateCharge is the front-desk "what would a stay cost" calculator: flat
// hourly rate for the class, partial hours rounded up, 10% off past 12 hours
// and 20% off past 24 hours.
//
// This is a quoting convenience only. Session billing on exit always goes
// through CalculateFee; the two formulas are intentionally independent and
// their results differ.
func EstimateCharge(class string, minutes int) int64 {
	_, hourlyRate := Models.ResolveClass(class)
	if minutes <= 0 {
		return hourlyRate
	}
	hours := int64((minutes + 59) / 60)
	total := hourlyRate * hours
	switch {
	case minutes >= fullDayMinutes:
		total = total * 80 / 100
	case minutes >= halfDayMinutes:
		total = total * 90 / 100
	}
	return total
}

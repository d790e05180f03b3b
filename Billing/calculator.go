package Billing

// CalculateFee computes the charge for a completed session from the base
// hourly rate snapshotted at entry and the elapsed minutes. Zero or negative
// minutes charge the full base rate, the minimum for a near-instant exit.
// Otherwise the rate is prorated linearly per hour and truncated to a whole
// currency unit.
func CalculateFee(baseRate int64, elapsedMinutes int) int64 {
	if elapsedMinutes <= 0 {
		return baseRate
	}
	return baseRate * int64(elapsedMinutes) / 60
}

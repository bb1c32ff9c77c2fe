package level

// BonusLedger accumulates time credits. The total never decreases.
type BonusLedger struct {
	totalMs float64
	credits int
}

// Credit adds ms to the ledger. Non-positive amounts are ignored.
func (l *BonusLedger) Credit(ms float64) bool {
	if ms <= 0 {
		return false
	}
	l.totalMs += ms
	l.credits++
	return true
}

// TotalMs returns the accumulated bonus.
func (l BonusLedger) TotalMs() float64 {
	return l.totalMs
}

// Credits returns how many credits were booked.
func (l BonusLedger) Credits() int {
	return l.credits
}

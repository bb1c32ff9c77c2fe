package storage

import "github.com/shopspring/decimal"

// FormatMs renders milliseconds as seconds with three decimals, e.g. "12.345 s".
func FormatMs(ms int64) string {
	return decimal.New(ms, -3).StringFixed(3) + " s"
}

// FormatDelta renders a signed difference to a reference time, e.g. "+1.250 s".
func FormatDelta(ms int64) string {
	d := decimal.New(ms, -3)
	sign := "+"
	if d.IsNegative() {
		sign = ""
	}
	return sign + d.StringFixed(3) + " s"
}

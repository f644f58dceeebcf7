package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatINR renders a pay amount as rupees with two decimals and Indian
// digit grouping: ₹1,23,45,678.90. Rounding is half away from zero.
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// groupIndian puts a comma before the last three digits and then before
// every further pair.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// formatQty renders piece and meter counts: whole numbers with thousands
// separators, fractions with up to 2 decimals.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return humanize.Comma(int64(qty))
	}
	return humanize.CommafWithDigits(qty, 2)
}

// formatAverage keeps the four decimals the lot sheet has always shown.
func formatAverage(avg float64) string {
	return fmt.Sprintf("%.4f", avg)
}

// formatRatio drops a trailing ".0" so 1.5 reads "1.5" and 2 reads "2".
func formatRatio(v float64) string {
	return humanize.Ftoa(v)
}

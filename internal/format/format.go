// Package format renders server values for terminal display.
package format

import (
	"fmt"
	"strings"
	"time"
)

// KES renders an amount in Kenyan shillings with thousands grouping:
// KES 1,234,567.89.
func KES(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	total := int64(amount*100 + 0.5)
	whole := total / 100
	cents := total % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sKES %s.%02d", sign, grouped.String(), cents)
}

// Phone normalizes Kenyan numbers to +254 form for display. Inputs it does
// not recognize pass through unchanged.
func Phone(p string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, p)
	switch {
	case strings.HasPrefix(cleaned, "+254"):
		return cleaned
	case strings.HasPrefix(cleaned, "254") && len(cleaned) == 12:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		return "+254" + cleaned[1:]
	default:
		return p
	}
}

// Title renders a snake_case enum value as words: pending_approval ->
// Pending Approval.
func Title(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Hours renders a duration as 7h 30m; sub-hour values drop the hour part.
func Hours(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// ShortDate renders a date as 02 Jan 2006.
func ShortDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// Days renders a (possibly fractional) day count: 1 day, 2.5 days.
func Days(n float64) string {
	if n == 1 {
		return "1 day"
	}
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d days", int64(n))
	}
	return fmt.Sprintf("%.1f days", n)
}

package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundRupee rounds an amount half-up to whole rupees, matching how totals
// are presented on tickets.
func RoundRupee(amount float64) float64 {
	return math.Round(amount)
}

// RoundPaise rounds to two decimals for intermediate fare figures.
func RoundPaise(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatINR renders an amount with the rupee prefix and Indian-style
// thousand grouping (1,00,000).
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(math.Round(amount))
	return fmt.Sprintf("%sRs %s", sign, groupINR(whole))
}

func groupINR(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

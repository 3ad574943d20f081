package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAmount converts decimal currency text ("12.34", "7") into minor
// units. The core only ever sees integers; rejecting malformed text is
// this layer's job.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount must be a positive number")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount has more than two decimal places")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a positive number")
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a positive number")
	}

	amount := units*100 + cents
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be a positive number")
	}
	return amount, nil
}

// formatAmount renders minor units as decimal currency text.
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

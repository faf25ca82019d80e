package utils

import (
	"fmt"
	"strings"
)

// FormatPrice renders a whole-shilling amount with thousands separators,
// e.g. 2500 -> "KSh 2,500".
func FormatPrice(price int) string {
	s := fmt.Sprintf("%d", price)
	if price < 0 {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "KSh " + strings.Join(parts, ",")
	if price < 0 {
		out = "KSh -" + strings.Join(parts, ",")
	}
	return out
}

// SplitCSV turns "Natural, Sage" into ["Natural","Sage"], dropping blanks.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

package svgpost

import (
	"strconv"
	"strings"
)

// parseViewBox parses a viewBox attribute into its four components.
// Components may be separated by whitespace, commas, or both. Anything other
// than exactly four well-formed numbers reports ok=false.
func parseViewBox(value string) (x, y, w, h float64, ok bool) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	var nums [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nums[3], true
}

// formatViewBox renders four viewBox components back to attribute form.
func formatViewBox(x, y, w, h float64) string {
	return formatNumber(x) + " " + formatNumber(y) + " " + formatNumber(w) + " " + formatNumber(h)
}

// SplitLength splits a CSS-style length like "10.5ex" into its numeric value
// and unit suffix. The numeric prefix follows parseFloat rules: optional
// sign, digits, optional fraction. An empty or missing numeric prefix
// reports ok=false.
func SplitLength(value string) (num float64, unit string, ok bool) {
	s := strings.TrimSpace(value)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, "", false
	}
	num, err := strconv.ParseFloat(strings.TrimSuffix(s[:i], "."), 64)
	if err != nil {
		return 0, "", false
	}
	return num, s[i:], true
}

// isPercentage reports whether a declared size is percentage-based.
func isPercentage(value string) bool {
	return strings.Contains(value, "%")
}

// formatNumber renders a float compactly, without a trailing ".0" for
// integral values.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

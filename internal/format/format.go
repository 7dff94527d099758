// Package format holds the display helpers shared by the console tables.
package format

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// EmptyAmount is shown for a missing amount.
	EmptyAmount = "—"
	// InvalidAmount is shown when an amount cannot be read as a number.
	InvalidAmount = "Invalid amount"

	// DefaultTruncate is the cell width used when a column has no explicit limit.
	DefaultTruncate = 30

	maxFractionDigits = 3
)

// Currency renders value as symbol followed by the en-IN grouped number
// (12,34,567.891). Grouping commas already present in value are accepted.
func Currency(symbol, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return EmptyAmount
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return InvalidAmount
	}
	return symbol + groupIndian(d.Round(maxFractionDigits).String())
}

// groupIndian inserts separators into a plain decimal string: the last three
// integer digits form one group and every two digits before that another.
func groupIndian(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(append(groups, tail), ",")
	}
	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

// Truncate shortens text to max runes and appends an ellipsis when it was cut.
func Truncate(text string, max int) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}

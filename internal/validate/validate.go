package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"boutique/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	reUser   = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)
	rePrice  = regexp.MustCompile(`^[0-9]{1,9}([.,][0-9]{1,2})?$`)
	reDigits = regexp.MustCompile(`^[0-9]{1,9}$`)
)

// MaxNameLen is the longest accepted product name, in characters.
const MaxNameLen = 120

// Name trims a product name and rejects blank or overlong values.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxNameLen {
		return "", false
	}
	return s, true
}

func Category(s string) (domain.Category, bool) {
	return domain.ParseCategory(strings.TrimSpace(s))
}

// Price parses a non-negative amount with at most two decimals. Both "12.5"
// and "12,5" are accepted. An empty field means zero.
func Price(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	if !rePrice.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Quantity parses a stock quantity (>= 0). An empty field means zero.
func Quantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if !reDigits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// SellQty parses a sale quantity bounded to 1..max.
func SellQty(s string, max int) (int, bool) {
	n, ok := Quantity(s)
	if !ok || n < 1 || n > max {
		return 0, false
	}
	return n, true
}

// ID validates a positive row id.
func ID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !reDigits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil && n > 0
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// Password only enforces a length window; the single admin picks its own policy.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 72
}

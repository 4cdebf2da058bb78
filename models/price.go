package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a non-negative amount with two decimal places, stored as cents.
type Price int64

// ErrInvalidPrice is returned when a price cannot be parsed.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice reads a decimal amount such as "10", "10.5" or "10.50".
// More than two fractional digits are rejected rather than rounded.
func ParsePrice(value string) (Price, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, ErrInvalidPrice
	}
	negative := strings.HasPrefix(trimmed, "-")
	if negative || strings.HasPrefix(trimmed, "+") {
		trimmed = trimmed[1:]
	}

	whole, frac, hasFrac := strings.Cut(trimmed, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, ErrInvalidPrice
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: at most 2 decimal places", ErrInvalidPrice)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrInvalidPrice
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, ErrInvalidPrice
	}
	cents := int64(0)
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, ErrInvalidPrice
		}
	}
	if units > (math.MaxInt64-cents)/100 {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidPrice)
	}
	total := units*100 + cents
	if negative {
		total = -total
	}
	return Price(total), nil
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats the price with exactly two decimals.
func (p Price) String() string {
	cents := int64(p)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner. Numeric columns come back as strings from
// postgres and as integers or floats from sqlite.
func (p *Price) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = 0
		return nil
	case int64:
		*p = Price(v * 100)
		return nil
	case float64:
		*p = Price(math.Round(v * 100))
		return nil
	case []byte:
		return p.scanString(string(v))
	case string:
		return p.scanString(v)
	default:
		return fmt.Errorf("scan price: unsupported type %T", src)
	}
}

func (p *Price) scanString(value string) error {
	parsed, err := ParsePrice(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if ferr != nil {
			return fmt.Errorf("scan price %q: %w", value, err)
		}
		*p = Price(math.Round(f * 100))
		return nil
	}
	*p = parsed
	return nil
}

// MarshalJSON renders the price as a decimal string to avoid float drift.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts the decimal string form as well as a bare number.
func (p *Price) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		text = number.String()
	}
	parsed, err := ParsePrice(text)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in integer cents. Prices are fixed-point with
// two decimal places on the wire; storing cents avoids float drift when
// totals are summed and frozen onto orders.
type Cents int64

// String renders the amount as a two-decimal string, e.g. 999 -> "9.99".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders Cents as a quoted two-decimal string.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare number.
func (c *Cents) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParseCents(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCents parses a decimal string like "12.50" or "12" into Cents.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var cents int64
	switch len(frac) {
	case 0:
		cents = 0
	case 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		cents = d * 10
	case 2:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		cents = d
	default:
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Cents(total), nil
}

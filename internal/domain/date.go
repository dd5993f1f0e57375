package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segyhp/finance-tracker/pkg/utils"
)

// Date is a calendar date without time of day. It is held at local noon and
// travels as "YYYY-MM-DD" in JSON and SQL.
type Date struct {
	t time.Time
}

// NewDate keeps only the calendar fields of t
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{t: utils.NormalizeDate(t)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := utils.ParseLocalDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return utils.FormatDateToString(d.t)
}

// Period returns the YYYY-MM competency period the date falls in
func (d Date) Period() string {
	return utils.FormatCompetencyPeriod(d.t)
}

// Before reports whether d is an earlier calendar day than other
func (d Date) Before(other Date) bool {
	return utils.IsBefore(d.t, other.t)
}

// Equal reports whether both values are the same calendar day
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

func (d Date) AddMonths(months int) Date {
	return Date{t: utils.AddMonths(d.t, months)}
}

func (d Date) AddDays(days int) Date {
	return NewDate(d.t.AddDate(0, 0, days))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a YYYY-MM-DD string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

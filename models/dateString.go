package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateString is a calendar date (no time-of-day) used for ledger entry
// dates and report boundaries. It marshals as "YYYY-MM-DD" in JSON and
// maps to a DATE column.
type DateString time.Time

func (d DateString) Time() time.Time {
	return time.Time(d)
}

func (d DateString) String() string {
	return time.Time(d).Format(dateLayout)
}

func ParseDateString(s string) (DateString, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateString{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return DateString(t), nil
}

func (d DateString) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("date must be a string")
	}
	parsed, err := ParseDateString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateString) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *DateString) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateString(v)
		return nil
	case []byte:
		parsed, err := ParseDateString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDateString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateString", src)
	}
}

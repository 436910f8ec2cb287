package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly carries a calendar date as YYYY-MM-DD. The hosted store declares
// the column as a Postgres date, which the driver surfaces as time.Time;
// the API contract wants the plain string form.
type DateOnly string

func (d *DateOnly) Scan(v any) error {
	switch t := v.(type) {
	case time.Time:
		*d = DateOnly(t.Format(DateLayout))
	case string:
		if len(t) > len(DateLayout) {
			t = t[:len(DateLayout)]
		}
		*d = DateOnly(t)
	case []byte:
		return d.Scan(string(t))
	case nil:
		*d = ""
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", v)
	}
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return string(d), nil
}

func (d DateOnly) String() string { return string(d) }

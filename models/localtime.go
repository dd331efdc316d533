package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const localTimeLayout = "2006-01-02 15:04:05"

// LocalTime is a second-precision local timestamp serialized as
// "YYYY-MM-DD HH:MM:SS", the board's wire format for post and comment
// dates.
type LocalTime time.Time

// NowLocal returns the current local time truncated to seconds.
func NowLocal() LocalTime {
	return LocalTime(time.Now().Local().Truncate(time.Second))
}

// Time returns the underlying time.Time.
func (t LocalTime) Time() time.Time {
	return time.Time(t)
}

// IsZero reports whether the timestamp is unset.
func (t LocalTime) IsZero() bool {
	return time.Time(t).IsZero()
}

// MarshalJSON implements json.Marshaler.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(localTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *LocalTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*t = LocalTime{}
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+localTimeLayout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = LocalTime(parsed)
	return nil
}

// Value implements driver.Valuer.
func (t LocalTime) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements sql.Scanner for the representations the sqlite and
// mysql drivers hand back.
func (t *LocalTime) Scan(v interface{}) error {
	switch val := v.(type) {
	case time.Time:
		*t = LocalTime(val)
		return nil
	case []byte:
		return t.scanString(string(val))
	case string:
		return t.scanString(val)
	case nil:
		*t = LocalTime{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", v)
	}
}

func (t *LocalTime) scanString(s string) error {
	for _, layout := range []string{localTimeLayout, time.RFC3339, time.RFC3339Nano} {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = LocalTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q into LocalTime", s)
}

// GormDataType tells the migrator which column type to use.
func (LocalTime) GormDataType() string {
	return "datetime"
}

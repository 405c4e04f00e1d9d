package entity

import (
	"bytes"
	"fmt"
	"time"
)

// DateTimeLayout is the wire format for every timestamp (yyyy-MM-dd HH:mm:ss).
const DateTimeLayout = time.DateTime

// DateTime is a local wall-clock timestamp serialized with DateTimeLayout.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func ParseDateTime(s string) (DateTime, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid date time %q, expected format %q", s, "yyyy-MM-dd HH:mm:ss")
	}
	return DateTime{Time: t}, nil
}

func (d DateTime) String() string {
	return d.In(time.Local).Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date time %s", data)
	}
	parsed, err := ParseDateTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

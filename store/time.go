// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// scanTime reads a timestamp column. lib/pq yields time.Time; SQLite may
// hand back text depending on how the value was written.
type scanTime struct {
	t     *time.Time
	valid bool
}

func (st *scanTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		st.valid = false
		return nil
	case time.Time:
		*st.t = v
	case string:
		t, err := parseTime(v)
		if err != nil {
			return err
		}
		*st.t = t
	case []byte:
		t, err := parseTime(string(v))
		if err != nil {
			return err
		}
		*st.t = t
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
	st.valid = true
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// timeCol scans a NOT NULL timestamp into t.
func timeCol(t *time.Time) *scanTime {
	return &scanTime{t: t}
}

// nullTimeCol scans a nullable timestamp, leaving *p nil for NULL.
type nullTimeCol struct {
	p **time.Time
}

func (n nullTimeCol) Scan(src any) error {
	if src == nil {
		*n.p = nil
		return nil
	}
	var t time.Time
	if err := (&scanTime{t: &t}).Scan(src); err != nil {
		return err
	}
	*n.p = &t
	return nil
}

package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDueDate reads a due date given as YYYY-MM-DD (midnight in now's
// location), RFC 3339, or an offset from now such as "+3d", "+4h" or "+30m".
func ParseDueDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("due date must not be empty")
	}

	if strings.HasPrefix(s, "+") {
		return parseOffset(s, now)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unsupported due date %q (use YYYY-MM-DD, RFC 3339, or +3d/+4h/+30m)", s)
}

func parseOffset(s string, now time.Time) (time.Time, error) {
	body := s[1:]
	if len(body) < 2 {
		return time.Time{}, fmt.Errorf("invalid due date offset %q", s)
	}
	n, err := strconv.Atoi(body[:len(body)-1])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid due date offset %q", s)
	}
	switch body[len(body)-1] {
	case 'd':
		return now.AddDate(0, 0, n), nil
	case 'h':
		return now.Add(time.Duration(n) * time.Hour), nil
	case 'm':
		return now.Add(time.Duration(n) * time.Minute), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported due date offset unit in %q (use d, h or m)", s)
	}
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// Wire layouts for appointment dates and times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCancelled Status = "CANCELADA"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, s)
}

type Appointment struct {
	ID        int64
	Date      time.Time     // calendar date at UTC midnight
	Time      time.Duration // offset from midnight, whole seconds
	Status    Status
	Notes     string
	PatientID int64
	DoctorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role struct {
	ID   int64
	Name string
}

type Specialty struct {
	ID   int64
	Name string
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidRequest, s)
	}
	return d, nil
}

// ParseClock parses HH:MM:SS (or HH:MM) into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	layout := ClockLayout
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: time must be HH:MM:SS, got %q", ErrInvalidRequest, s)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

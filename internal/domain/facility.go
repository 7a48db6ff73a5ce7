package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidFacility возвращается при нарушении инвариантов объекта
	ErrInvalidFacility = errors.New("domain: invalid facility")

	// ErrInvalidSite возвращается при нарушении инвариантов места
	ErrInvalidSite = errors.New("domain: invalid site")
)

// Facility represents a bookable venue unit (e.g. one BBQ ground) with its
// own flat per-slot pricing and capacity
type Facility struct {
	ID           int64
	Name         string
	Type         string
	Capacity     int
	WeekdayPrice int64
	WeekendPrice int64
	Amenities    []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate проверяет инварианты объекта
func (f *Facility) Validate() error {
	if f.Name == "" {
		return ErrInvalidFacility
	}
	if f.Capacity < 1 {
		return ErrInvalidFacility
	}
	if f.WeekdayPrice < 0 || f.WeekendPrice < 0 {
		return ErrInvalidFacility
	}
	return nil
}

// Site represents a physical sub-location within a facility (a numbered
// table/plot); the actual unit that gets reserved
type Site struct {
	ID         int64
	FacilityID int64
	SiteNumber int
	Name       string
	Capacity   int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate проверяет инварианты места
func (s *Site) Validate() error {
	if s.FacilityID <= 0 || s.SiteNumber <= 0 {
		return ErrInvalidSite
	}
	return nil
}

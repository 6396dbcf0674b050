package salonboard

import (
	"fmt"
	"salonsync-backend/lib/timezone"
	"time"
)

// SalonType discriminates the two portal skins. The reservation list
// is rendered with a different table layout per skin, everything else
// shares one layout.
type SalonType string

const (
	SalonTypeHair  SalonType = "hair"
	SalonTypeRelax SalonType = "relax"
)

func ParseSalonType(s string) (SalonType, error) {
	switch SalonType(s) {
	case SalonTypeHair, SalonTypeRelax:
		return SalonType(s), nil
	}
	return "", fmt.Errorf("unknown salon type: %q", s)
}

type Reservation struct {
	PortalID      string
	Date          string // as rendered, "2006/01/02"
	Time          string // as rendered, "15:04"
	Status        string
	CustomerName  string
	StaffName     string
	Channel       string
	Menu          string
	PointsUsed    int
	PaymentMethod string
	Amount        int
}

func (r Reservation) NaturalKey() string { return r.PortalID }

// StartsAt parses the rendered date/time pair in the portal's
// timezone. ok is false when either field didn't survive extraction.
func (r Reservation) StartsAt() (time.Time, bool) {
	t, err := time.ParseInLocation("2006/01/02 15:04", r.Date+" "+r.Time, timezone.Location)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type MenuItem struct {
	Name           string
	Category       string
	Description    string
	Price          int
	DurationMin    int
	Reservable     bool
	Published      bool
	SearchCategory string
}

func (m MenuItem) NaturalKey() string { return m.Name }

type StaffMember struct {
	Name            string
	Role            string
	YearsExperience *int
	Published       bool
	PhotoURL        string
	Description     string
}

func (s StaffMember) NaturalKey() string { return s.Name }

type Coupon struct {
	PortalID    string
	Name        string
	Description string
	Price       int
	Reservable  bool
	Published   bool
}

func (c Coupon) NaturalKey() string { return c.PortalID }

package syncengine

import (
	"database/sql"
	"salonsync-backend/services/salonboard"
	"salonsync-backend/services/syncengine/db"
)

// row conversions between the store and the portal-facing types; the
// diff runs on the portal-facing side so both ends must round-trip
// exactly.

func menuFromRow(r db.MenuItem) salonboard.MenuItem {
	return salonboard.MenuItem{
		Name:           r.Name,
		Category:       r.Category,
		Description:    r.Description,
		Price:          int(r.Price),
		DurationMin:    int(r.DurationMin),
		Reservable:     r.Reservable,
		Published:      r.Published,
		SearchCategory: r.SearchCategory,
	}
}

func staffFromRow(r db.StaffMember) salonboard.StaffMember {
	var years *int
	if r.YearsExperience.Valid {
		n := int(r.YearsExperience.Int64)
		years = &n
	}
	return salonboard.StaffMember{
		Name:            r.Name,
		Role:            r.Role,
		YearsExperience: years,
		Published:       r.Published,
		PhotoURL:        r.PhotoUrl,
		Description:     r.Description,
	}
}

func staffExperience(s salonboard.StaffMember) sql.NullInt64 {
	if s.YearsExperience == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*s.YearsExperience), Valid: true}
}

func couponFromRow(r db.Coupon) salonboard.Coupon {
	return salonboard.Coupon{
		PortalID:    r.PortalID,
		Name:        r.Name,
		Description: r.Description,
		Price:       int(r.Price),
		Reservable:  r.Reservable,
		Published:   r.Published,
	}
}

package salonboard

import (
	"bytes"
	"context"
	"fmt"
	"salonsync-backend/lib/htmlutil"
	"salonsync-backend/lib/textutil"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Booking struct {
	StaffName    string
	Start        time.Time
	End          time.Time
	CustomerName string
	CustomerKana string
	Phone        string
	Memo         string
}

type BookingResult struct {
	// the portal's own reservation number, when the confirmation
	// screen exposes one
	PortalID string
}

// staff rosters barely change; cache resolved ids briefly so pushing
// a batch of reservations doesn't re-scrape the selector list per
// booking
var staffIDCache = expirable.NewLRU[string, string](4096, nil, time.Minute*15)

// ResolveStaffID maps a human-readable staff name onto the portal's
// internal identifier by scanning the scheduling screen's staff
// selector. Names are compared normalized (width folded, whitespace
// and decoration markers stripped, case folded); no match is fatal
// for the push.
func (c *Client) ResolveStaffID(ctx context.Context, name string) (string, error) {
	ctx, span := tracer.Start(ctx, "ResolveStaffID")
	defer span.End()

	target := textutil.NormalizeName(name)
	cacheKey := c.owner + "/" + target
	if id, hit := staffIDCache.Get(cacheKey); hit {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return id, nil
	}

	doc, err := c.fetchDocument(ctx, schedulePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch scheduling screen")
		return "", err
	}

	options := doc.Find(bookingSkin.StaffOptions)
	if options.Length() == 0 {
		return "", fmt.Errorf("staff selector not found on %s", schedulePath)
	}

	found := ""
	closest := ""
	closestSim := 0.0
	options.EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		optName := htmlutil.CleanText(opt)
		normalized := textutil.NormalizeName(optName)
		if normalized == "" {
			return true
		}
		if normalized == target {
			found = opt.AttrOr("value", "")
			return false
		}
		// keep the nearest miss around for the error message
		sim := matchr.JaroWinkler(normalized, target, false)
		if sim > closestSim {
			closestSim = sim
			closest = optName
		}
		return true
	})

	if found == "" {
		err := StaffNotFound{Name: name, Closest: closest, Similarity: closestSim}
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	staffIDCache.Add(cacheKey, found)
	return found, nil
}

// PushReservation submits one locally created reservation through the
// portal's own booking form. The portal offers no programmatic
// confirmation signal, so after submitting we let its flow settle for
// a fixed wait before reading the confirmation screen.
func (c *Client) PushReservation(ctx context.Context, b Booking) (BookingResult, error) {
	ctx, span := tracer.Start(ctx, "PushReservation")
	defer span.End()
	span.SetAttributes(
		attribute.String("staff", b.StaffName),
		attribute.String("start", b.Start.Format(time.RFC3339)),
	)

	staffID, err := c.ResolveStaffID(ctx, b.StaffName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve staff")
		return BookingResult{}, err
	}

	// deep link straight into the booking form for staff, day and hour
	deepLink := fmt.Sprintf(
		"%s?stylistId=%s&date=%s&hour=%02d",
		reserveInputPath, staffID, b.Start.Format("20060102"), b.Start.Hour(),
	)
	doc, err := c.fetchDocument(ctx, deepLink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open booking form")
		return BookingResult{}, err
	}
	if doc.Find(bookingSkin.Form).Length() == 0 {
		return BookingResult{}, fmt.Errorf("booking form not found on %s", reserveInputPath)
	}

	duration := int(b.End.Sub(b.Start).Minutes())
	if duration <= 0 {
		return BookingResult{}, fmt.Errorf("booking has non-positive duration")
	}

	surname, givenName := textutil.SplitName(b.CustomerName)
	surnameKana, givenNameKana := textutil.SplitName(b.CustomerKana)

	form := map[string]string{
		"stylistId":      staffID,
		"date":           b.Start.Format("20060102"),
		"startHour":      fmt.Sprintf("%02d", b.Start.Hour()),
		"startMinute":    fmt.Sprintf("%02d", b.Start.Minute()),
		"durationHour":   fmt.Sprintf("%d", duration/60),
		"durationMinute": fmt.Sprintf("%02d", duration%60),
		"lastName":       surname,
		"firstName":      givenName,
		"lastNameKana":   surnameKana,
		"firstNameKana":  givenNameKana,
		"phone":          b.Phone,
		"memo":           b.Memo,
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(reserveCompletePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit booking form")
		return BookingResult{}, wrapFetchError(reserveCompletePath, err)
	}

	select {
	case <-time.After(c.settleWait):
	case <-ctx.Done():
		return BookingResult{}, ctx.Err()
	}

	confirmation, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return BookingResult{}, err
	}
	portalID := htmlutil.CleanText(confirmation.Find(bookingSkin.ReserveID))

	span.SetAttributes(attribute.String("portal_id", portalID))
	return BookingResult{PortalID: portalID}, nil
}

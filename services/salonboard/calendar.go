package salonboard

import (
	"context"
	"fmt"
	"salonsync-backend/lib/htmlutil"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// The date-range picker on the reservation screen is a month
// calendar widget. Selecting a day means walking the widget to the
// right month via its "next month" control and then following the
// anchor whose href encodes the day as YYYYMMDD.
//
// Modeled as explicit states rather than a loop-with-flags so the
// "portal never reaches the target month" case surfaces as an error
// instead of spinning forever.

type calendarState int

const (
	calendarClosed calendarState = iota
	calendarOpen
	calendarAtTarget
)

// the widget is only ever a handful of months away from the target;
// anything beyond this means the target is malformed or the widget
// is broken
const maxMonthHops = 24

// the header renders like "2026年8月"
func parseMonthHeader(text string) (int, time.Month, error) {
	var year, month int
	_, err := fmt.Sscanf(text, "%d年%d月", &year, &month)
	if err != nil {
		return 0, 0, fmt.Errorf("unrecognized calendar header %q", text)
	}
	return year, time.Month(month), nil
}

// SelectDateRange walks the calendar widget to both endpoints of the
// range, which is how the portal's own UI arms the reservation list
// filter.
func (c *Client) SelectDateRange(ctx context.Context, start, end time.Time) error {
	ctx, span := tracer.Start(ctx, "SelectDateRange")
	defer span.End()
	span.SetAttributes(
		attribute.String("start", start.Format("20060102")),
		attribute.String("end", end.Format("20060102")),
	)

	err := c.selectDay(ctx, start, "start")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select range start")
		return err
	}
	err = c.selectDay(ctx, end, "end")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select range end")
		return err
	}
	return nil
}

func (c *Client) selectDay(ctx context.Context, target time.Time, field string) error {
	state := calendarClosed
	var doc *goquery.Document
	var err error

	for hops := 0; state != calendarAtTarget; hops++ {
		if hops > maxMonthHops {
			return NavigationTimeout{
				Screen: calendarPath,
				Err:    fmt.Errorf("calendar never reached %s after %d steps", target.Format("2006-01"), maxMonthHops),
			}
		}

		switch state {
		case calendarClosed:
			doc, err = c.fetchDocument(ctx, fmt.Sprintf("%s?target=%s", calendarPath, field))
			if err != nil {
				return err
			}
			state = calendarOpen

		case calendarOpen:
			header := doc.Find(calendarSkin.MonthHeader)
			if header.Length() == 0 {
				return fmt.Errorf("calendar month header not found on %s", calendarPath)
			}
			year, month, err := parseMonthHeader(htmlutil.CleanText(header))
			if err != nil {
				return err
			}
			if year == target.Year() && month == target.Month() {
				state = calendarAtTarget
				continue
			}

			next := doc.Find(calendarSkin.NextMonth)
			href, ok := next.Attr("href")
			if !ok {
				return fmt.Errorf("calendar next-month control not found on %s", calendarPath)
			}
			doc, err = c.fetchDocument(ctx, href)
			if err != nil {
				return err
			}
		}
	}

	// the day anchor's link target encodes the exact date
	marker := fmt.Sprintf("date=%s", target.Format("20060102"))
	for _, anchor := range htmlutil.GetAnchors(doc.Find("a")) {
		if strings.Contains(anchor.Href, marker) {
			_, err = c.fetchDocument(ctx, anchor.Href)
			return err
		}
	}
	return fmt.Errorf("no calendar anchor for %s", target.Format("2006-01-02"))
}

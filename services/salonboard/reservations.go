package salonboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FetchReservations extracts every reservation in [start, end] from
// the portal, page by page. When lastSeenID is non-empty, pagination
// short-circuits as soon as that reservation appears mid-page:
// everything older has already been synced.
func (c *Client) FetchReservations(ctx context.Context, start, end time.Time, lastSeenID string) ([]Reservation, error) {
	ctx, span := tracer.Start(ctx, "FetchReservations")
	defer span.End()
	span.SetAttributes(attribute.String("salon_type", string(c.salonType)))

	err := c.SelectDateRange(ctx, start, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select date range")
		return nil, err
	}

	var out []Reservation
	err = c.Paginate(ctx, reserveListPath, func(doc *goquery.Document) (int, bool, error) {
		rows := doc.Find(c.resSel.Row)
		sentinel := false

		rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
			r, err := c.extractReservation(ctx, row)
			if err != nil {
				// one bad row never aborts the batch
				slog.WarnContext(ctx, "skipping reservation row", "row", i, "err", err)
				return true
			}
			if lastSeenID != "" && r.PortalID == lastSeenID {
				sentinel = true
				return false
			}
			out = append(out, r)
			return true
		})

		return rows.Length(), sentinel, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pagination failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	return out, nil
}

func (c *Client) extractReservation(ctx context.Context, row *goquery.Selection) (Reservation, error) {
	sel := c.resSel

	id := fieldText(ctx, row, sel.ID, "reservation_id")
	if id == "" {
		return Reservation{}, fmt.Errorf("row has no reservation id")
	}

	return Reservation{
		PortalID:      id,
		Date:          fieldText(ctx, row, sel.Date, "date"),
		Time:          fieldText(ctx, row, sel.Time, "time"),
		Status:        fieldText(ctx, row, sel.Status, "status"),
		CustomerName:  fieldText(ctx, row, sel.Customer, "customer_name"),
		StaffName:     fieldText(ctx, row, sel.Staff, "staff_name"),
		Channel:       fieldText(ctx, row, sel.Channel, "channel"),
		Menu:          fieldText(ctx, row, sel.Menu, "menu"),
		PointsUsed:    fieldInt(ctx, row, sel.Points, "points_used"),
		PaymentMethod: fieldText(ctx, row, sel.Payment, "payment_method"),
		Amount:        fieldInt(ctx, row, sel.Amount, "amount"),
	}, nil
}

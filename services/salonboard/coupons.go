package salonboard

import (
	"context"
	"fmt"
	"log/slog"
	"salonsync-backend/lib/retryutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (c *Client) FetchCoupons(ctx context.Context) ([]Coupon, error) {
	ctx, span := tracer.Start(ctx, "FetchCoupons")
	defer span.End()

	out, err := retryutil.Do(ctx, listAttempts, listRetryDelay, func() ([]Coupon, error) {
		doc, err := c.fetchDocument(ctx, couponListPath)
		if err != nil {
			return nil, err
		}
		rows := doc.Find(couponSkin.Row)
		if rows.Length() == 0 {
			return nil, fmt.Errorf("coupon table not visible on %s", couponListPath)
		}

		var coupons []Coupon
		rows.Each(func(i int, row *goquery.Selection) {
			coupon, err := extractCoupon(ctx, row)
			if err != nil {
				slog.WarnContext(ctx, "skipping coupon row", "row", i, "err", err)
				return
			}
			coupons = append(coupons, coupon)
		})
		return coupons, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	return out, nil
}

func extractCoupon(ctx context.Context, row *goquery.Selection) (Coupon, error) {
	// the portal assigns each coupon a stable identifier on the row
	id := row.AttrOr("data-coupon-id", "")
	if id == "" {
		return Coupon{}, fmt.Errorf("row has no coupon id")
	}

	published := fieldFlag(ctx, row, couponSkin.Published, "published")
	reservable := fieldFlag(ctx, row, couponSkin.Reservable, "reservable")

	return Coupon{
		PortalID:    id,
		Name:        fieldText(ctx, row, couponSkin.Name, "name"),
		Description: fieldText(ctx, row, couponSkin.Description, "description"),
		Price:       fieldInt(ctx, row, couponSkin.Price, "price"),
		// a coupon is only actually bookable when it is both open for
		// reservation and published
		Reservable: reservable && published,
		Published:  published,
	}, nil
}

package salonboard

import (
	"context"
	"fmt"
	"log/slog"
	"salonsync-backend/lib/retryutil"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// the menu/staff/coupon screens render their tables only after the
// portal's own scripts settle, so the fetch is retried as a whole
const listAttempts = 3
const listRetryDelay = time.Second

func (c *Client) FetchMenus(ctx context.Context) ([]MenuItem, error) {
	ctx, span := tracer.Start(ctx, "FetchMenus")
	defer span.End()

	out, err := retryutil.Do(ctx, listAttempts, listRetryDelay, func() ([]MenuItem, error) {
		doc, err := c.fetchDocument(ctx, menuListPath)
		if err != nil {
			return nil, err
		}
		rows := doc.Find(menuSkin.Row)
		if rows.Length() == 0 {
			return nil, fmt.Errorf("menu table not visible on %s", menuListPath)
		}

		var items []MenuItem
		rows.Each(func(i int, row *goquery.Selection) {
			item, err := extractMenuItem(ctx, row)
			if err != nil {
				slog.WarnContext(ctx, "skipping menu row", "row", i, "err", err)
				return
			}
			items = append(items, item)
		})
		return items, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	return out, nil
}

func extractMenuItem(ctx context.Context, row *goquery.Selection) (MenuItem, error) {
	name := fieldText(ctx, row, menuSkin.Name, "menu_name")
	if name == "" {
		return MenuItem{}, fmt.Errorf("row has no menu name")
	}

	return MenuItem{
		Name:           name,
		Category:       fieldText(ctx, row, menuSkin.Category, "category"),
		Description:    fieldText(ctx, row, menuSkin.Description, "description"),
		Price:          fieldInt(ctx, row, menuSkin.Price, "price"),
		DurationMin:    fieldInt(ctx, row, menuSkin.Duration, "duration"),
		Reservable:     fieldFlag(ctx, row, menuSkin.Reservable, "reservable"),
		Published:      fieldFlag(ctx, row, menuSkin.Published, "published"),
		SearchCategory: fieldText(ctx, row, menuSkin.SearchCategory, "search_category"),
	}, nil
}

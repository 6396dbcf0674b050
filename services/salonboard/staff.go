package salonboard

import (
	"context"
	"fmt"
	"log/slog"
	"salonsync-backend/lib/retryutil"
	"salonsync-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (c *Client) FetchStaff(ctx context.Context) ([]StaffMember, error) {
	ctx, span := tracer.Start(ctx, "FetchStaff")
	defer span.End()

	out, err := retryutil.Do(ctx, listAttempts, listRetryDelay, func() ([]StaffMember, error) {
		doc, err := c.fetchDocument(ctx, staffListPath)
		if err != nil {
			return nil, err
		}
		rows := doc.Find(staffSkin.Row)
		if rows.Length() == 0 {
			return nil, fmt.Errorf("staff table not visible on %s", staffListPath)
		}

		var members []StaffMember
		rows.Each(func(i int, row *goquery.Selection) {
			member, err := extractStaffMember(ctx, row)
			if err != nil {
				slog.WarnContext(ctx, "skipping staff row", "row", i, "err", err)
				return
			}
			members = append(members, member)
		})
		return members, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(out)))
	return out, nil
}

func extractStaffMember(ctx context.Context, row *goquery.Selection) (StaffMember, error) {
	name := fieldText(ctx, row, staffSkin.Name, "staff_name")
	if name == "" {
		return StaffMember{}, fmt.Errorf("row has no staff name")
	}

	// experience is blank for staff who haven't filled it in; keep
	// the distinction between "0 years" and "not stated"
	var years *int
	if text := fieldText(ctx, row, staffSkin.Experience, "experience"); text != "" {
		n := textutil.ParseDigits(text)
		years = &n
	}

	return StaffMember{
		Name:            name,
		Role:            fieldText(ctx, row, staffSkin.Role, "role"),
		YearsExperience: years,
		Published:       fieldFlag(ctx, row, staffSkin.Published, "published"),
		PhotoURL:        fieldAttr(ctx, row, staffSkin.Photo, "src", "photo"),
		Description:     fieldText(ctx, row, staffSkin.Description, "description"),
	}, nil
}

package salonboard

import (
	"context"
	"log/slog"
	"salonsync-backend/lib/htmlutil"
	"salonsync-backend/lib/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field extraction is tolerant by design: a selector that resolves to
// nothing yields the zero value for that field and a warning, never a
// failed record. Only a row without its natural key is dropped, and a
// dropped row never aborts the rest of the batch.

func fieldText(ctx context.Context, row *goquery.Selection, sel, field string) string {
	found := row.Find(sel)
	if found.Length() == 0 {
		slog.WarnContext(ctx, "field element missing, defaulting", "field", field, "selector", sel)
		return ""
	}
	return htmlutil.CleanText(found)
}

func fieldInt(ctx context.Context, row *goquery.Selection, sel, field string) int {
	return textutil.ParseDigits(fieldText(ctx, row, sel, field))
}

func fieldAttr(ctx context.Context, row *goquery.Selection, sel, attr, field string) string {
	found := row.Find(sel)
	if found.Length() == 0 {
		slog.WarnContext(ctx, "field element missing, defaulting", "field", field, "selector", sel)
		return ""
	}
	return found.AttrOr(attr, "")
}

// the portal renders availability/publication states as short labels;
// anything unrecognized defaults to false
func fieldFlag(ctx context.Context, row *goquery.Selection, sel, field string) bool {
	text := fieldText(ctx, row, sel, field)
	return strings.Contains(text, "受付中") ||
		strings.Contains(text, "掲載中") ||
		strings.Contains(text, "公開中")
}

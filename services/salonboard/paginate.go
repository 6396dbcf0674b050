package salonboard

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type pageState int

const (
	stateFetchPage pageState = iota
	stateContinue
	stateStop
)

// hard ceiling; the portal shows at most a few dozen pages
const maxPages = 200

// Paginate walks the result set starting at firstPage. onPage reports
// how many rows the page held and whether it hit the caller's
// sentinel (the cursor short-circuit, distinct from running out of
// pages). Pagination stops on an empty page, a hit sentinel, or a
// missing next-page control.
func (c *Client) Paginate(ctx context.Context, firstPage string, onPage func(doc *goquery.Document) (rows int, sentinel bool, err error)) error {
	ctx, span := tracer.Start(ctx, "Paginate")
	defer span.End()

	next := firstPage
	state := stateFetchPage
	pages := 0

	for state != stateStop {
		if pages >= maxPages {
			return NavigationTimeout{
				Screen: firstPage,
				Err:    fmt.Errorf("result set did not terminate after %d pages", maxPages),
			}
		}

		doc, err := c.fetchDocument(ctx, next)
		if err != nil {
			return err
		}
		pages++

		rows, sentinel, err := onPage(doc)
		if err != nil {
			return err
		}
		if rows == 0 || sentinel {
			state = stateStop
			continue
		}

		href, ok := doc.Find(c.resSel.NextPage).Attr("href")
		if !ok {
			state = stateStop
			continue
		}
		next = href
		state = stateContinue
	}

	span.SetAttributes(attribute.Int("pages", pages))
	return nil
}

package lattice

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/tables"
)

// ExtractPages runs det over pages concurrently, at most limit at a time
// (no limit when limit < 1). Results are in page order. The first
// detector error cancels the remaining pages and is returned wrapped with
// the page number; a cancelled ctx stops scheduling further pages.
func ExtractPages(ctx context.Context, det tables.Detector, pages []*model.Page, limit int) ([][]*model.Table, error) {
	if det == nil {
		return nil, fmt.Errorf("lattice: nil detector")
	}
	return forEachPage(ctx, pages, limit, det.Detect)
}

func forEachPage[T any](ctx context.Context, pages []*model.Page, limit int, fn func(*model.Page) (T, error)) ([]T, error) {
	results := make([]T, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, page := range pages {
		if gctx.Err() != nil {
			break
		}
		i, page := i, page
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(page)
			if err != nil {
				return fmt.Errorf("page %d: %w", pageNumber(page, i), err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// pageNumber falls back to the page's position when it has no number.
func pageNumber(page *model.Page, i int) int {
	if page == nil || page.Number == 0 {
		return i + 1
	}
	return page.Number
}

// Package ruling normalizes the line segments drawn on a page and finds
// where they cross.
//
// Raw rulings are noisy: a single grid line is often drawn as several
// abutting or slightly overlapping segments, sometimes a fraction of a
// point apart. [Normalize] splits rulings by orientation and repeatedly
// [Collapse]s each set until it stops shrinking, then numbers the result
// so each surviving ruling has a distinct ID.
//
// [FindIntersections] builds an [Index] from points to the IDs of the
// horizontal and vertical ruling meeting there. Cell detection uses the
// IDs, not coordinates, to prove that two corners lie on the same edge.
//
//	h, v := ruling.Normalize(page.Rulings, ruling.Options{HorizontalGap: 1, VerticalGap: 1})
//	idx := ruling.FindIntersections(h, v, 1, 1)
package ruling

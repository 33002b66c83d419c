// Package model provides the geometric and tabular types shared by the
// ruling, text, and table packages.
//
// # Coordinates
//
// All coordinates are in page space with the origin at the top-left corner
// and y growing downward. A [BBox] stores its left edge in X and its top
// edge in Y, so Bottom() is greater than Top().
//
// Coordinates are compared after rounding to [Precision] decimal places.
// [Round] is the only rounding function; [Point.Key], [Point.Equal],
// [ComparePointsRowMajor] and [ComparePointsColumnMajor] all go through it,
// so equal points always hash and sort together.
//
// # Rulings
//
// A [Ruling] is a line segment classified as horizontal, vertical or
// oblique. Rulings carry an integer ID; after normalization every ruling
// has a distinct ID and geometric coincidence does not make two rulings
// the same edge.
//
// # Pages
//
// A [Page] holds rulings and text fragments. Text is indexed in an R-tree
// so [Page.TextInArea] and [Page.Area] are cheap for large pages:
//
//	page := model.NewPage(1, 612, 792)
//	page.AddRuling(model.NewRuling(0, 0, 100, 0))
//	page.AddText(model.TextFragment{Text: "A", BBox: model.NewBBox(10, 10, 6, 10)})
//
// # Tables
//
// A [Table] is one detected table region with its cells laid out in rows,
// plus export helpers: ToMarkdown, ToCSV, and ToHTML.
package model

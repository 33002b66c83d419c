// Package debug draws the intermediate products of a lattice extraction
// onto an image, for inspecting why a table was or was not found.
//
//	a := tables.NewLatticeDetector().Analyze(page, page.Rulings)
//	img, err := debug.Render(a, 2)
//	if err != nil {
//	    // handle error
//	}
//	err = debug.WritePNG(f, img)
//
// Layers are drawn bottom to top: table regions (tinted), cells
// (outlined), horizontal and vertical rulings, and intersections.
package debug

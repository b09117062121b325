// Package layout places spec sheet sections on fixed-size pages.
//
// The engine is pure placement logic: it draws through the Canvas
// interface, measures text through Measurer and obtains images through
// images.Loader. No PDF library is imported here, so the engine is tested
// with a recording canvas.
//
// # Cursor
//
// Layout state is an explicit Cursor (page, x, y, row height, columns used
// in the current row). Every block checks the cursor against the printable
// bottom before drawing and inserts a page break otherwise. A page break
// runs the page hook (used for the running footer) and, inside a section,
// redraws the section heading suffixed with "(continued)".
//
// # Grids and columns
//
// Diagrams flow through a 4-column Grid; each image spans 1 to 4 columns
// depending on its aspect ratio (ColumnSpan). Lists flow through two
// independent columns split at ceil(n/2) (SplitColumns, PlanColumns).
package layout

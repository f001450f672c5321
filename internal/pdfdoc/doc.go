// Package pdfdoc holds the page model produced by the layout engine and
// serializes it to PDF with codeberg.org/go-pdf/fpdf.
//
// A Page is a list of drawing operations in PDF points with a top-left
// origin. Text is drawn at a baseline cursor that WriteText advances
// horizontally and LineBreak moves down by the current line height. Images
// are registered once in the Document and referenced by ImageID from any
// number of pages.
package pdfdoc

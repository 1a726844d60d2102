// Package hocr converts between page layouts and hOCR, the HTML-based
// standard format for representing OCR results.
//
// Export maps a layout.Page onto the hOCR hierarchy:
//
// - the page becomes an element with class 'ocr_page' and 'bbox 0 0 W H'
// - every block becomes an 'ocr_carea', with its outline in the 'poly' property
// - every line becomes an 'ocr_line', with its type in 'x_type'
//
// Import reads the first 'ocr_page' of an hOCR document back into a
// layout.Page. Content areas become blocks; documents without areas use
// their paragraphs instead. A block outline is taken from 'poly' when
// present and from the bounding box otherwise.
//
// Main Functions:
//
// - Generate: renders hOCR HTML for a page
// - Parse: reads hOCR HTML into a page
// - ParseTitle: splits an hOCR title attribute into properties
package hocr

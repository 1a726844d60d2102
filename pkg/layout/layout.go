// Package layout implements the data model and parser for page-description
// XML documents, the per-page layout files produced for scanned documents.
//
// A document has one PAGE element carrying the page size, and a number of
// TEXTBLOCK elements. Each block holds recognized LINE elements and, at most,
// one POLYGON describing the block outline:
//
//	<PAGE WIDTH="2480" HEIGHT="3508">
//	  <TEXTBLOCK>
//	    <LINE X="120" Y="80" WIDTH="900" HEIGHT="40" STRING="Chapter 1" TYPE="header"/>
//	    <POLYGON POINTS="100,70,1040,70,1040,130,100,130"/>
//	  </TEXTBLOCK>
//	</PAGE>
//
// Parsing is lenient by default: a missing or non-numeric attribute turns
// into NaN instead of an error, and polygons of odd length are kept as they
// are. WithStrict switches both cases to errors. A POLYGON without POINTS
// fails the document in either mode.
//
// Key Types:
//
// - Page: page dimensions and the blocks in document order
// - Block: a text region with its lines and optional outline
// - Line: one recognized text line
// - Polygon: flat x,y coordinate list in page units
//
// Main Functions:
//
// - ParseDocument: parses a full XML document into a Page
// - ParsePolygon: parses a POINTS attribute
package layout

package layout

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element and attribute names of the page-description format
const (
	tagPage      = "PAGE"
	tagTextBlock = "TEXTBLOCK"
	tagLine      = "LINE"
	tagPolygon   = "POLYGON"

	attrWidth  = "WIDTH"
	attrHeight = "HEIGHT"
	attrX      = "X"
	attrY      = "Y"
	attrString = "STRING"
	attrType   = "TYPE"
	attrPoints = "POINTS"
)

var (
	// ErrMalformedXML is returned when the input is not well-formed XML
	ErrMalformedXML = errors.New("malformed XML")
	// ErrNoPage is returned when the document has no PAGE element
	ErrNoPage = errors.New("no PAGE element found")
	// ErrInvalidAttribute is returned in strict mode for missing or non-numeric attributes
	ErrInvalidAttribute = errors.New("invalid numeric attribute")
	// ErrOddPolygon is returned in strict mode for polygons with an unpaired coordinate
	ErrOddPolygon = errors.New("polygon has an odd number of coordinates")
	// ErrMissingPoints is returned when a POLYGON has no POINTS attribute
	ErrMissingPoints = errors.New("polygon has no POINTS attribute")
)

type parseConfig struct {
	strict bool
}

// ParseOption changes how ParseDocument treats questionable input
type ParseOption func(*parseConfig)

// WithStrict makes ParseDocument fail on missing or non-numeric numeric
// attributes and on odd-length polygons instead of producing NaN values.
func WithStrict() ParseOption {
	return func(c *parseConfig) {
		c.strict = true
	}
}

// element is a minimal DOM node, enough for tag lookups in document order
type element struct {
	name     string
	attrs    map[string]string
	children []*element
}

func (e *element) attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// descendants returns all descendant elements named name, in document order
func (e *element) descendants(name string) []*element {
	var result []*element
	var walk func(*element)
	walk = func(n *element) {
		for _, c := range n.children {
			if c.name == name {
				result = append(result, c)
			}
			walk(c)
		}
	}
	walk(e)
	return result
}

// first returns the first descendant named name, or nil
func (e *element) first(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
		if found := c.first(name); found != nil {
			return found
		}
	}
	return nil
}

// ParseDocument converts a page-description XML document into a Page.
// Blocks keep the document order of their TEXTBLOCK elements.
func ParseDocument(data []byte, opts ...ParseOption) (Page, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	root, err := buildTree(data)
	if err != nil {
		return Page{}, err
	}

	var pageNode *element
	if root.name == tagPage {
		pageNode = root
	} else {
		pageNode = root.first(tagPage)
	}
	if pageNode == nil {
		return Page{}, ErrNoPage
	}

	p := &parser{strict: cfg.strict}
	page := Page{
		Dimensions: Dimensions{
			Width:  p.float(pageNode, attrWidth, "PAGE"),
			Height: p.float(pageNode, attrHeight, "PAGE"),
		},
	}

	for i, tb := range pageNode.descendants(tagTextBlock) {
		page.Blocks = append(page.Blocks, p.block(tb, i))
	}

	if err := errors.Join(append(p.missing, p.errs...)...); err != nil {
		return Page{}, err
	}
	return page, nil
}

// ParsePolygon splits a POINTS attribute on commas and converts every token
// to a number. Order is preserved; tokens that are not numbers become NaN.
func ParsePolygon(points string) Polygon {
	tokens := strings.Split(points, ",")
	poly := make(Polygon, len(tokens))
	for i, tok := range tokens {
		poly[i] = parseNumber(tok)
	}
	return poly
}

type parser struct {
	strict bool
	errs   []error

	// failures in any mode
	missing []error
}

func (p *parser) block(n *element, index int) Block {
	where := fmt.Sprintf("TEXTBLOCK %d", index)

	var lines []Line
	for j, ln := range n.descendants(tagLine) {
		lwhere := fmt.Sprintf("%s LINE %d", where, j)
		line := Line{
			X:      p.float(ln, attrX, lwhere),
			Y:      p.float(ln, attrY, lwhere),
			Width:  p.float(ln, attrWidth, lwhere),
			Height: p.float(ln, attrHeight, lwhere),
		}
		line.Text, _ = ln.attr(attrString)
		if t, ok := ln.attr(attrType); ok {
			line.Type = &t
		}
		lines = append(lines, line)
	}

	block := Block{
		Type:  DefaultBlockType,
		Lines: lines,
	}
	if len(lines) > 0 && lines[0].Type != nil {
		block.Type = *lines[0].Type
	}

	if poly := n.first(tagPolygon); poly != nil {
		points, ok := poly.attr(attrPoints)
		if !ok {
			p.missing = append(p.missing, fmt.Errorf("%w: %s", ErrMissingPoints, where))
			return block
		}
		block.Polygon = ParsePolygon(points)
		if p.strict {
			p.checkPolygon(block.Polygon, where)
		}
	}

	return block
}

func (p *parser) float(n *element, name, where string) float64 {
	raw, ok := n.attr(name)
	if !ok {
		p.fail(fmt.Errorf("%w: %s has no %s", ErrInvalidAttribute, where, name))
		return parseFloatPrefix("")
	}
	f := parseFloatPrefix(raw)
	if !isNumeric(f) {
		p.fail(fmt.Errorf("%w: %s %s=%q", ErrInvalidAttribute, where, name, raw))
	}
	return f
}

func (p *parser) checkPolygon(poly Polygon, where string) {
	if len(poly)%2 != 0 {
		p.fail(fmt.Errorf("%w: %s has %d values", ErrOddPolygon, where, len(poly)))
	}
	for i, v := range poly {
		if !isNumeric(v) {
			p.fail(fmt.Errorf("%w: %s POINTS value %d is not a number", ErrInvalidAttribute, where, i))
		}
	}
}

func (p *parser) fail(err error) {
	if p.strict {
		p.errs = append(p.errs, err)
	}
}

// buildTree decodes the XML into an element tree and returns its root
func buildTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{
				name:  t.Name.Local,
				attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: more than one root element", ErrMalformedXML)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
	}
	return root, nil
}

package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/pageview/pkg/layout"
)

// ErrNoPage is returned when the hOCR data has no ocr_page element
var ErrNoPage = errors.New("no ocr_page elements found in hOCR data")

// lineClasses are the hOCR classes that describe a text line.
// Classes other than ocr_line double as the line type.
var lineClasses = []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"}

// Parse converts the first page of raw hOCR data into a layout.Page
func Parse(data []byte) (layout.Page, error) {
	decoded, err := decode(data)
	if err != nil {
		return layout.Page{}, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return layout.Page{}, err
	}

	pageNode := findFirst(doc, func(n *html.Node) bool { return hasClass(n, "ocr_page") })
	if pageNode == nil {
		return layout.Page{}, ErrNoPage
	}

	page := layout.Page{Dimensions: layout.Dimensions{Width: math.NaN(), Height: math.NaN()}}
	if bbox, ok := ParseTitle(getAttrVal(pageNode, "title"))["bbox"]; ok && len(bbox) >= 4 {
		page.Width = parseNumber(bbox[2])
		page.Height = parseNumber(bbox[3])
	}

	blockNodes := findAll(pageNode, func(n *html.Node) bool { return hasClass(n, "ocr_carea") })
	if len(blockNodes) == 0 {
		blockNodes = findAll(pageNode, func(n *html.Node) bool { return hasClass(n, "ocr_par") })
	}

	for _, n := range blockNodes {
		page.Blocks = append(page.Blocks, processBlock(n))
	}

	return page, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	parts := strings.Split(title, ";")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		items := strings.Fields(part)
		if len(items) > 0 {
			key := items[0]
			values := items[1:]
			result[key] = values
		}
	}

	return result
}

// processBlock turns an area or paragraph into a block
func processBlock(n *html.Node) layout.Block {
	props := ParseTitle(getAttrVal(n, "title"))

	block := layout.Block{Type: layout.DefaultBlockType}

	for _, ln := range findAll(n, isLine) {
		block.Lines = append(block.Lines, processLine(ln))
	}
	if len(block.Lines) > 0 && block.Lines[0].Type != nil {
		block.Type = *block.Lines[0].Type
	}

	if poly, ok := props["poly"]; ok && len(poly) > 0 {
		block.Polygon = make(layout.Polygon, len(poly))
		for i, v := range poly {
			block.Polygon[i] = parseNumber(v)
		}
	} else if bbox, ok := props["bbox"]; ok && len(bbox) >= 4 {
		x1, y1 := parseNumber(bbox[0]), parseNumber(bbox[1])
		x2, y2 := parseNumber(bbox[2]), parseNumber(bbox[3])
		block.Polygon = layout.Polygon{x1, y1, x2, y1, x2, y2, x1, y2}
	}

	return block
}

// processLine extracts the line box, type and text
func processLine(n *html.Node) layout.Line {
	props := ParseTitle(getAttrVal(n, "title"))

	nan := math.NaN()
	line := layout.Line{X: nan, Y: nan, Width: nan, Height: nan}
	if bbox, ok := props["bbox"]; ok && len(bbox) >= 4 {
		x1, y1 := parseNumber(bbox[0]), parseNumber(bbox[1])
		x2, y2 := parseNumber(bbox[2]), parseNumber(bbox[3])
		line.X, line.Y = x1, y1
		line.Width, line.Height = x2-x1, y2-y1
	}

	if typ, ok := props["x_type"]; ok && len(typ) > 0 {
		t := strings.Join(typ, " ")
		if t == emptyType {
			t = ""
		}
		line.Type = &t
	} else if class := lineClass(n); class != "ocr_line" {
		t := strings.TrimPrefix(class, "ocr_")
		line.Type = &t
	}

	words := findAll(n, func(c *html.Node) bool { return hasClass(c, "ocrx_word") })
	if len(words) > 0 {
		texts := make([]string, 0, len(words))
		for _, w := range words {
			if t := extractTextContent(w); t != "" {
				texts = append(texts, t)
			}
		}
		line.Text = strings.Join(texts, " ")
	} else {
		line.Text = extractTextContent(n)
	}

	return line
}

// decode converts ISO-8859-1 input to UTF-8 based on the declared charset
func decode(data []byte) ([]byte, error) {
	head := strings.ToLower(string(data[:min(len(data), 1024)]))
	idx := strings.Index(head, "charset=")
	if idx < 0 {
		return data, nil
	}

	enc := strings.FieldsFunc(head[idx+len("charset="):], func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(enc) == 0 {
		return data, nil
	}

	switch enc[0] {
	case "iso-8859-1", "latin1", "latin-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", enc[0], err)
		}
		return decoded, nil
	}
	return data, nil
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func isLine(n *html.Node) bool {
	return lineClass(n) != ""
}

func lineClass(n *html.Node) string {
	for _, class := range lineClasses {
		if hasClass(n, class) {
			return class
		}
	}
	return ""
}

// findFirst returns the first node in document order matching match
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns matching descendants, not descending into matches
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var result []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				result = append(result, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return result
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// extractTextContent gets all text from a node and its children,
// with runs of whitespace collapsed
func extractTextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

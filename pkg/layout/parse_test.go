package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const samplePage = `<?xml version="1.0" encoding="UTF-8"?>
<DOCUMENT>
  <PAGE WIDTH="1000" HEIGHT="500">
    <TEXTBLOCK>
      <LINE X="10" Y="20" WIDTH="300" HEIGHT="25" STRING="Chapter One" TYPE="header"/>
      <LINE X="10" Y="50" WIDTH="280" HEIGHT="20" STRING="It was a dark night."/>
      <POLYGON POINTS="5,15,320,15,320,75,5,75"/>
    </TEXTBLOCK>
    <TEXTBLOCK>
      <LINE X="10" Y="100" WIDTH="200" HEIGHT="20" STRING="no outline"/>
    </TEXTBLOCK>
    <TEXTBLOCK>
      <POLYGON POINTS="100,200,300,200,300,400"/>
      <POLYGON POINTS="1,1,2,2"/>
    </TEXTBLOCK>
  </PAGE>
</DOCUMENT>`

func strPtr(s string) *string { return &s }

func TestParseDocument(t *testing.T) {
	page, err := ParseDocument([]byte(samplePage))
	require.NoError(t, err)

	want := Page{
		Dimensions: Dimensions{Width: 1000, Height: 500},
		Blocks: []Block{
			{
				Type: "header",
				Lines: []Line{
					{X: 10, Y: 20, Width: 300, Height: 25, Text: "Chapter One", Type: strPtr("header")},
					{X: 10, Y: 50, Width: 280, Height: 20, Text: "It was a dark night."},
				},
				Polygon: Polygon{5, 15, 320, 15, 320, 75, 5, 75},
			},
			{
				Type: DefaultBlockType,
				Lines: []Line{
					{X: 10, Y: 100, Width: 200, Height: 20, Text: "no outline"},
				},
			},
			{
				Type:    DefaultBlockType,
				Polygon: Polygon{100, 200, 300, 200, 300, 400},
			},
		},
	}

	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("ParseDocument() mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 3, page.LineCount())
}

func TestParseDocumentBlockWithoutPolygon(t *testing.T) {
	page, err := ParseDocument([]byte(samplePage))
	require.NoError(t, err)

	require.Nil(t, page.Blocks[1].Polygon)
	require.Len(t, page.Blocks[1].Lines, 1)
}

func TestParseDocumentFirstLineWithoutType(t *testing.T) {
	doc := `<PAGE WIDTH="10" HEIGHT="10">
	<TEXTBLOCK>
		<LINE X="1" Y="1" WIDTH="1" HEIGHT="1" STRING="a"/>
		<LINE X="1" Y="2" WIDTH="1" HEIGHT="1" STRING="b" TYPE="header"/>
	</TEXTBLOCK>
</PAGE>`
	page, err := ParseDocument([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "text", page.Blocks[0].Type)
	require.Equal(t, "header", page.Blocks[0].Lines[1].LineType())
	require.Equal(t, "", page.Blocks[0].Lines[0].LineType())
}

func TestParseDocumentEmptyType(t *testing.T) {
	doc := `<PAGE WIDTH="10" HEIGHT="10"><TEXTBLOCK><LINE STRING="a" TYPE=""/></TEXTBLOCK></PAGE>`
	page, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	// an empty TYPE is present, so it wins over the default
	require.Equal(t, "", page.Blocks[0].Type)
}

func TestParseDocumentLenientNumbers(t *testing.T) {
	doc := `<PAGE WIDTH="12.5px" HEIGHT="abc">
	<TEXTBLOCK>
		<LINE X=" 3" Y="" STRING="x"/>
		<POLYGON POINTS="1, 2,x,,5"/>
	</TEXTBLOCK>
</PAGE>`
	page, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	require.Equal(t, 12.5, page.Width)
	require.True(t, math.IsNaN(page.Height))

	line := page.Blocks[0].Lines[0]
	require.Equal(t, 3.0, line.X)
	require.True(t, math.IsNaN(line.Y))
	require.True(t, math.IsNaN(line.Width), "missing attribute")

	poly := page.Blocks[0].Polygon
	require.Len(t, poly, 5)
	require.Equal(t, 1.0, poly[0])
	require.Equal(t, 2.0, poly[1])
	require.True(t, math.IsNaN(poly[2]))
	require.Equal(t, 0.0, poly[3], "empty token")
	require.Equal(t, 5.0, poly[4])
}

func TestParseDocumentStrict(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "non numeric width",
			doc:  `<PAGE WIDTH="abc" HEIGHT="10"/>`,
			want: ErrInvalidAttribute,
		},
		{
			name: "missing line attribute",
			doc:  `<PAGE WIDTH="10" HEIGHT="10"><TEXTBLOCK><LINE X="1" Y="1" WIDTH="1"/></TEXTBLOCK></PAGE>`,
			want: ErrInvalidAttribute,
		},
		{
			name: "odd polygon",
			doc:  `<PAGE WIDTH="10" HEIGHT="10"><TEXTBLOCK><POLYGON POINTS="1,2,3"/></TEXTBLOCK></PAGE>`,
			want: ErrOddPolygon,
		},
		{
			name: "non numeric point",
			doc:  `<PAGE WIDTH="10" HEIGHT="10"><TEXTBLOCK><POLYGON POINTS="1,2,a,4"/></TEXTBLOCK></PAGE>`,
			want: ErrInvalidAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.doc), WithStrict())
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)

			_, err = ParseDocument([]byte(tt.doc))
			require.NoError(t, err, "lenient mode accepts the same input")
		})
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", ``, ErrMalformedXML},
		{"unclosed", `<PAGE WIDTH="1" HEIGHT="1"><TEXTBLOCK>`, ErrMalformedXML},
		{"two roots", `<PAGE/><PAGE/>`, ErrMalformedXML},
		{"html", `<html><body>404 not found</body></html>`, ErrNoPage},
		{"polygon without points", `<PAGE WIDTH="1" HEIGHT="1"><TEXTBLOCK><POLYGON/></TEXTBLOCK></PAGE>`, ErrMissingPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDocumentLatin1(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<PAGE WIDTH=\"1\" HEIGHT=\"1\"><TEXTBLOCK><LINE STRING=\"Gr\xfc\xdfe\"/></TEXTBLOCK></PAGE>")
	page, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Equal(t, "Grüße", page.Blocks[0].Lines[0].Text)
}

func TestParsePolygon(t *testing.T) {
	require.Equal(t, Polygon{10, 20, 30, 40}, ParsePolygon("10,20,30,40"))
	require.Equal(t, Polygon{-1.5, 2e3}, ParsePolygon("-1.5, 2e3"))
	require.Equal(t, Polygon{16, 8, 5, 255}, ParsePolygon("0x10,0o10,0b101, 0XfF "))
}

func TestParsePolygonRadixEdgeCases(t *testing.T) {
	for _, tok := range []string{"-0x10", "+0x10", "0x", "0b2", "0o8", "0x1.5"} {
		poly := ParsePolygon(tok)
		require.True(t, math.IsNaN(poly[0]), tok)
	}

	// parseFloat stops at the x
	page, err := ParseDocument([]byte(`<PAGE WIDTH="0x10" HEIGHT="1"/>`))
	require.NoError(t, err)
	require.Equal(t, 0.0, page.Width)
}

func TestPolygonPoints(t *testing.T) {
	require.Equal(t, []Point{{10, 20}, {30, 40}}, Polygon{10, 20, 30, 40}.Points())
	require.Equal(t, []Point{{1, 2}}, Polygon{1, 2, 3}.Points())
	require.Nil(t, Polygon{1}.Points())
}

func TestPolygonBounds(t *testing.T) {
	minX, minY, maxX, maxY, ok := Polygon{5, 15, 320, 15, math.NaN(), 1, 5, 75}.Bounds()
	require.True(t, ok)
	require.Equal(t, []float64{5, 15, 320, 75}, []float64{minX, minY, maxX, maxY})

	_, _, _, _, ok = Polygon{math.NaN(), 1}.Bounds()
	require.False(t, ok)
}

func TestBlockText(t *testing.T) {
	b := Block{Lines: []Line{{Text: "a"}, {Text: "b"}}}
	require.Equal(t, "a\nb", b.Text())
}

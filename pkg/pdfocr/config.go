package pdfocr

// Config holds user options for the PDF surface
type Config struct {
	Debug     bool   // Show the text layer in red instead of hiding it
	TextLayer bool   // Write the line text into a searchable layer
	LayerName string // Base name of the text layer (page number will be appended)
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Debug:     false,
		TextLayer: true,
		LayerName: "OCR Text", // Will be formatted as "OCR Text (Page X)" in the final PDF
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for OCR text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica which is tried and tested for the OCR layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

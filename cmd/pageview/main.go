// pageview is a command-line tool for rendering page annotation documents.
//
// It loads the XML layout of one page, either through the viewer data
// location or from a local file, and draws every text block outline onto a
// canvas scaled to fit the page. One block can be highlighted. The result is
// written as a PNG image or as a PDF with an invisible text layer.
//
// Usage:
//
//	pageview -pid doc1 -page 3 -output page.png [options]
//
// Input options (one required):
//
//	-pid string       Document identifier, used with -page
//	-page string      Page identifier, used with -pid
//	-input string     Local .xml layout or .hocr file
//
// Output options:
//
//	-output string    Output path, .png or .pdf
//	-hocr string      Also export the page as hOCR to this path
//	-overwrite        Overwrite output files if they exist
//
// Rendering options:
//
//	-config string    YAML config file
//	-source string    Viewer page URL or directory (overrides config)
//	-width int        Canvas width (overrides config)
//	-height int       Canvas height (overrides config)
//	-highlight int    Index of the block to highlight (default -1, none)
//	-strict           Reject documents with invalid numeric attributes
//	-text-layer       Embed the line text in PDF output (default true)
//	-debug            Make the PDF text layer visible and log at debug level
//
// Examples:
//
// Render page 3 of doc1 as served next to a viewer page:
//
//	pageview -source https://archive.example.org/docs/viewer/index.html -pid doc1 -page 3 -output doc1_3.png
//
// Highlight the second block of a local file and export a searchable PDF:
//
//	pageview -input doc1_3.xml -highlight 1 -output doc1_3.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gardar/pageview/pkg/config"
	"github.com/gardar/pageview/pkg/fetch"
	"github.com/gardar/pageview/pkg/hocr"
	"github.com/gardar/pageview/pkg/layout"
	"github.com/gardar/pageview/pkg/pdfocr"
	"github.com/gardar/pageview/pkg/raster"
	"github.com/gardar/pageview/pkg/viewer"
)

// surface is what pageview can write once drawing is done
type surface interface {
	viewer.Surface
	write(path string) error
}

type pngSurface struct{ *raster.Canvas }

func (s pngSurface) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type pdfSurface struct{ *pdfocr.Canvas }

func (s pdfSurface) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Output(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	source := flag.String("source", "", "Viewer page URL or directory the data is resolved against")
	pid := flag.String("pid", "", "Document identifier")
	page := flag.String("page", "", "Page identifier")
	inputPath := flag.String("input", "", "Local .xml layout or .hocr file to render instead of fetching")
	outputPath := flag.String("output", "", "Output path (.png or .pdf)")
	hocrPath := flag.String("hocr", "", "Also export the page as hOCR to this path")
	width := flag.Int("width", 0, "Canvas width in pixels")
	height := flag.Int("height", 0, "Canvas height in pixels")
	highlight := flag.Int("highlight", viewer.NoHighlight, "Index of the block to highlight")
	strict := flag.Bool("strict", false, "Reject documents with invalid numeric attributes")
	textLayer := flag.Bool("text-layer", true, "Embed the line text in PDF output")
	debug := flag.Bool("debug", false, "Make the PDF text layer visible and log at debug level")
	overwrite := flag.Bool("overwrite", false, "Overwrite output files if they already exist")
	flag.Parse()

	if *outputPath == "" && *hocrPath == "" {
		fmt.Println("Error: Must provide -output or -hocr path")
		os.Exit(1)
	}
	if *inputPath == "" && (*pid == "" || *page == "") {
		fmt.Println("Error: Must provide either -input or both -pid and -page")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags that were set win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *source
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "strict":
			cfg.Strict = *strict
		case "text-layer":
			cfg.PDF.TextLayer = *textLayer
		case "debug":
			cfg.PDF.Debug = *debug
			if *debug {
				cfg.LogLevel = slog.LevelDebug
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	for _, path := range []string{*outputPath, *hocrPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			if !*overwrite {
				fmt.Printf("Output file %s already exists. Use -overwrite to overwrite.\n", path)
				os.Exit(1)
			}
		}
	}

	logger := cfg.Logger()

	var out surface
	switch ext := strings.ToLower(filepath.Ext(*outputPath)); ext {
	case ".pdf":
		out = pdfSurface{pdfocr.New(float64(cfg.Width), float64(cfg.Height), cfg.PDF)}
	case ".png", "":
		out = pngSurface{raster.New(cfg.Width, cfg.Height)}
	default:
		fmt.Printf("Error: Unsupported output format %q, use .png or .pdf\n", ext)
		os.Exit(1)
	}

	var parseOpts []layout.ParseOption
	if cfg.Strict {
		parseOpts = append(parseOpts, layout.WithStrict())
	}

	// Either read a local file or fetch the page the way the viewer does
	var state viewer.State
	var label string
	if *inputPath != "" {
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			fmt.Printf("Failed to read input file: %v\n", err)
			os.Exit(1)
		}

		var doc layout.Page
		if ext := strings.ToLower(filepath.Ext(*inputPath)); ext == ".hocr" || ext == ".html" {
			doc, err = hocr.Parse(data)
		} else {
			doc, err = layout.ParseDocument(data, parseOpts...)
		}
		if err != nil {
			fmt.Printf("Failed to parse %s: %v\n", *inputPath, err)
			os.Exit(1)
		}

		state = viewer.NewState(doc)
		label = filepath.Base(*inputPath)
	} else {
		src, err := fetch.New(cfg.Source, fetch.WithUserAgent(cfg.UserAgent))
		if err != nil {
			fmt.Printf("Invalid source: %v\n", err)
			os.Exit(1)
		}

		id := viewer.PageIdentity{PID: *pid, Page: *page}
		state, err = viewer.Load(context.Background(), src, id, parseOpts...)
		if err != nil {
			fmt.Printf("Failed to load page: %v\n", err)
			os.Exit(1)
		}
		label = id.Label()
	}

	// Render once so a PDF gets a single page
	state = state.Highlight(*highlight)
	viewer.Render(out, state)

	logger.Debug("page loaded",
		"label", label,
		"blocks", len(state.Page.Blocks),
		"lines", state.Page.LineCount(),
		"highlight", state.HighlightIndex,
	)

	if *outputPath != "" {
		if err := out.write(*outputPath); err != nil {
			fmt.Printf("Failed to write output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rendered %s (%d blocks) to %s\n", label, len(state.Page.Blocks), *outputPath)
	}

	if *hocrPath != "" {
		doc, err := hocr.Generate(state.Page, label)
		if err != nil {
			fmt.Printf("Failed to generate hOCR: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*hocrPath, []byte(doc), 0644); err != nil {
			fmt.Printf("Failed to write hOCR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported hOCR to %s\n", *hocrPath)
	}
}

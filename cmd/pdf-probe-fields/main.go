// Command pdf-probe-fields dumps every form field of a contracting
// template: name, kind, radio on-states, owning page and widget rectangle.
// Run it against a new template revision to diagnose mapping-report drift
// before updating the stored field mappings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/pdfform"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	help         = flag.Bool("help", false, "Show help message")
)

type probedField struct {
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Options []string  `json:"options,omitempty"`
	Page    int       `json:"page,omitempty"`
	Rect    []float64 `json:"rect,omitempty"`
}

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %v\n", pdfPath, err)
		os.Exit(1)
	}

	doc, err := pdfform.Load(data, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot parse %s: %v\n", pdfPath, err)
		os.Exit(1)
	}

	var probed []probedField
	for _, f := range doc.Fields() {
		p := probedField{Name: f.Name, Kind: string(f.Kind), Options: f.Options}
		if rect, page, err := doc.WidgetRect(f.Name); err == nil {
			p.Page = page
			p.Rect = []float64{rect.LLX, rect.LLY, rect.URX, rect.URY}
		}
		probed = append(probed, p)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(probed); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("%s: %d pages, %d fields\n\n", pdfPath, doc.PageCount(), len(probed))
		for _, p := range probed {
			fmt.Printf("  %-40s %-10s", p.Name, p.Kind)
			if p.Page > 0 {
				fmt.Printf(" page %d  rect %.1f,%.1f,%.1f,%.1f", p.Page, p.Rect[0], p.Rect[1], p.Rect[2], p.Rect[3])
			}
			if len(p.Options) > 0 {
				fmt.Printf("  options=%v", p.Options)
			}
			fmt.Println()
		}
	}
}

func printHelp() {
	fmt.Println("pdf-probe-fields - dump form fields of a contracting template")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format   Output format: text (default), json")
}

func printUsage() {
	fmt.Printf("Usage: %s [options] <template.pdf>\n", os.Args[0])
}

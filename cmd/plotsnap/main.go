// Command plotsnap renders CSV series to a PNG image without a display.
//
// Usage:
//
//	go run ./cmd/plotsnap/ -o out.png data.csv [more.csv ...]
//
// The first CSV column is X and every further column is a series. The view
// fits all data unless -region is given as "x,y,w,h".
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-theft-auto/plot"
	"github.com/go-theft-auto/plot/backend/raster"
	"github.com/go-theft-auto/plot/internal/csvdata"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("plotsnap", flag.ContinueOnError)
	out := fs.String("o", "plot.png", "output PNG path")
	width := fs.Int("w", 960, "image width in pixels")
	height := fs.Int("h", 540, "image height in pixels")
	dark := fs.Bool("dark", false, "use the dark style")
	region := fs.String("region", "", "logical region x,y,w,h (default: fit data)")
	padding := fs.Float64("pad", 0.05, "padding around fitted data, as a fraction of the span")
	thickness := fs.Float64("thickness", 1.5, "line thickness in pixels")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no CSV files given")
	}
	plot.SetVerbose(*verbose)

	style := plot.DefaultStyle()
	if *dark {
		style = plot.DarkStyle()
	}
	g := plot.NewGraph(plot.WithStyle(style))
	g.Resize(*width, *height)

	for _, path := range fs.Args() {
		lines, err := csvdata.LoadFile(path)
		if err != nil {
			return err
		}
		for _, l := range lines {
			l.Thickness = float32(*thickness)
			if len(fs.Args()) > 1 {
				l.Label = path + ":" + l.Label
			}
			g.AddLine(l)
		}
	}

	if *region != "" {
		r, err := parseRegion(*region)
		if err != nil {
			return err
		}
		if err := g.Display(r); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	} else if err := g.FitToData(*padding); err != nil {
		return fmt.Errorf("fit: %w", err)
	}

	f, err := g.Redraw()
	if err != nil {
		return err
	}
	r, err := raster.NewRenderer(*width, *height)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.Render(f); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := r.SavePNG(*out); err != nil {
		return fmt.Errorf("save %s: %w", *out, err)
	}
	fmt.Printf("wrote %s (%dx%d, %d series)\n", *out, *width, *height, len(g.Lines()))
	return nil
}

// parseRegion parses "x,y,w,h".
func parseRegion(s string) (plot.DataRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return plot.DataRect{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return plot.DataRect{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = f
	}
	return plot.DataRect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

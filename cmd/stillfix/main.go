// main.go - stillfix command line tool

package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
)

func main() {
	outFile := flag.String("o", "", "Output file (default: input_clean.png)")
	profile := flag.String("profile", "default", "Region profile (default or stock)")
	gap := flag.Int("gap", 40, "Sample gap in pixels (30-60)")
	grains := flag.Int("grain", 120, "Grain dot count (20-220)")
	seed := flag.Int64("seed", 0, "Grain seed (0 picks one per run)")
	stats := flag.Bool("stats", false, "Print timing statistics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stillfix [options] input.png\n\nRebuilds watermarked regions of a still image from nearby content.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stillfix frame.png\n")
		fmt.Fprintf(os.Stderr, "  stillfix -o clean.png -profile stock frame.jpg\n")
		fmt.Fprintf(os.Stderr, "  stillfix -gap 55 -grain 200 frame.png\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)

	regions, ok := profileRegions(*profile)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown profile %q (want default or stock)\n", *profile)
		os.Exit(1)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error decoding %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	grainSeed := *seed
	if grainSeed == 0 {
		grainSeed = time.Now().UnixNano()
	}

	rest := NewRestorer(regions)
	rest.gap = *gap
	rest.grainCount = *grains
	rest.Seed(grainSeed)

	start := time.Now()
	clean := rest.CleanImage(img)
	elapsed := time.Since(start)

	outputPath := *outFile
	if outputPath == "" {
		base := inputPath
		if i := strings.LastIndexByte(base, '.'); i > 0 {
			base = base[:i]
		}
		outputPath = base + "_clean.png"
	}

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	if err := png.Encode(out, clean); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "error encoding %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	if *stats {
		b := img.Bounds()
		fmt.Printf("Input:   %s (%dx%d)\n", inputPath, b.Dx(), b.Dy())
		fmt.Printf("Output:  %s\n", outputPath)
		fmt.Printf("Regions: %d\n", len(regions))
		fmt.Printf("Elapsed: %v\n", elapsed)
	}
}

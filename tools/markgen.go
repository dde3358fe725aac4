// markgen.go - Generate a watermarked test frame for manual runs
//
// Usage: go run markgen.go [output.png]
// Output: marked.png in the current directory unless a path is given

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

const (
	frameW = 1280
	frameH = 720
)

// The slab positions match the built-in default profile so the generated
// frame exercises all three regions.
var slabs = []struct {
	x, y, w, h float64
}{
	{0.015, 0.02, 0.22, 0.10},
	{0.70, 0.84, 0.27, 0.12},
	{0.25, 0.88, 0.50, 0.09},
}

func main() {
	outPath := "marked.png"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	img := image.NewRGBA(image.Rect(0, 0, frameW, frameH))

	// Smooth two-axis gradient so reconstruction artifacts are visible.
	for y := 0; y < frameH; y++ {
		for x := 0; x < frameW; x++ {
			v := 0.5 + 0.5*math.Sin(float64(x+y)/48.0)
			r := byte(40 + 180*v)
			g := byte(60 + 120*float64(y)/frameH)
			b := byte(200 - 140*v)
			img.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}

	for i, s := range slabs {
		x0 := int(s.x * frameW)
		y0 := int(s.y * frameH)
		w := int(s.w * frameW)
		h := int(s.h * frameH)
		stampSlab(img, x0, y0, w, h)
		fmt.Printf("Slab %d: %dx%d at (%d,%d)\n", i, w, h, x0, y0)
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("Error creating output: %v\n", err)
		os.Exit(1)
	}
	if err := png.Encode(f, img); err != nil {
		fmt.Printf("Error encoding PNG: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Printf("Error closing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Written %dx%d frame to %s\n", frameW, frameH, outPath)
}

// stampSlab draws a translucent white box with a darker outline and a few
// dash marks, roughly what platform overlays look like.
func stampSlab(img *image.RGBA, x0, y0, w, h int) {
	for y := y0; y < y0+h && y < frameH; y++ {
		for x := x0; x < x0+w && x < frameW; x++ {
			c := img.RGBAAt(x, y)
			edge := x == x0 || y == y0 || x == x0+w-1 || y == y0+h-1
			if edge {
				img.SetRGBA(x, y, color.RGBA{30, 30, 30, 255})
				continue
			}
			// 70% white over the background
			c.R = byte(float64(c.R)*0.3 + 255*0.7)
			c.G = byte(float64(c.G)*0.3 + 255*0.7)
			c.B = byte(float64(c.B)*0.3 + 255*0.7)
			img.SetRGBA(x, y, c)
		}
	}
	// Dash marks suggest lettering without rendering a font.
	for d := 0; d < 5; d++ {
		dx := x0 + w/8 + d*(w/6)
		dy := y0 + h/2
		for x := dx; x < dx+w/10 && x < x0+w-2 && x < frameW; x++ {
			img.SetRGBA(x, dy, color.RGBA{80, 80, 80, 255})
			if dy+1 < y0+h-1 {
				img.SetRGBA(x, dy+1, color.RGBA{80, 80, 80, 255})
			}
		}
	}
}

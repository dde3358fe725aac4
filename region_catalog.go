// region_catalog.go - Candidate watermark regions expressed as frame fractions

package main

import (
	"fmt"
	"strings"
)

// DirectionHint tells the patch sampler which axis to displace along when
// hunting for uncontaminated pixels near a region.
type DirectionHint int

const (
	HintLeft DirectionHint = iota
	HintRight
	HintTop
	HintBottom
	HintHorizontal
	HintVertical
)

func (h DirectionHint) String() string {
	switch h {
	case HintLeft:
		return "left"
	case HintRight:
		return "right"
	case HintTop:
		return "top"
	case HintBottom:
		return "bottom"
	case HintHorizontal:
		return "horizontal"
	case HintVertical:
		return "vertical"
	}
	return fmt.Sprintf("hint(%d)", int(h))
}

// ParseHint maps a profile-file hint string to its DirectionHint.
func ParseHint(s string) (DirectionHint, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return HintLeft, true
	case "right":
		return HintRight, true
	case "top":
		return HintTop, true
	case "bottom":
		return HintBottom, true
	case "horizontal":
		return HintHorizontal, true
	case "vertical":
		return HintVertical, true
	}
	return 0, false
}

// Region is one candidate watermark rectangle in fractional frame
// coordinates. Invariant: XFrac+WFrac <= 1 and YFrac+HFrac <= 1.
type Region struct {
	XFrac, YFrac float64
	WFrac, HFrac float64
	Hint         DirectionHint
}

// Valid reports whether the region obeys the fractional invariant.
func (r Region) Valid() bool {
	if r.WFrac <= 0 || r.HFrac <= 0 {
		return false
	}
	if r.XFrac < 0 || r.YFrac < 0 {
		return false
	}
	return r.XFrac+r.WFrac <= 1 && r.YFrac+r.HFrac <= 1
}

// Rect is a concrete pixel rectangle.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// PixelRect converts the fractional region to pixels for a frame of the
// given size. The result always has at least 1x1 extent and never spills
// outside the frame when the fractional invariant holds.
func (r Region) PixelRect(frameW, frameH int) Rect {
	x := int(r.XFrac * float64(frameW))
	y := int(r.YFrac * float64(frameH))
	w := int(r.WFrac * float64(frameW))
	h := int(r.HFrac * float64(frameH))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if x > frameW-1 {
		x = frameW - 1
	}
	if y > frameH-1 {
		y = frameH - 1
	}
	if x+w > frameW {
		w = frameW - x
	}
	if y+h > frameH {
		h = frameH - y
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Profile is a named, ordered region catalog. The order matters only where
// regions overlap: later entries are composited last and win.
type Profile struct {
	Name    string
	Regions []Region
}

// Built-in catalogs. "default" matches the usual social-export layout:
// corner badge, bottom-right logo strip, bottom caption band. "stock" adds
// the oversized center bands seen on stock-footage diagonal tilings; the
// overlap with the corner regions is intentional and tolerated.
var builtinProfiles = []Profile{
	{
		Name: "default",
		Regions: []Region{
			{XFrac: 0.015, YFrac: 0.02, WFrac: 0.22, HFrac: 0.10, Hint: HintRight},
			{XFrac: 0.70, YFrac: 0.84, WFrac: 0.27, HFrac: 0.12, Hint: HintLeft},
			{XFrac: 0.25, YFrac: 0.88, WFrac: 0.50, HFrac: 0.09, Hint: HintTop},
		},
	},
	{
		Name: "stock",
		Regions: []Region{
			{XFrac: 0.015, YFrac: 0.02, WFrac: 0.22, HFrac: 0.10, Hint: HintRight},
			{XFrac: 0.70, YFrac: 0.84, WFrac: 0.27, HFrac: 0.12, Hint: HintLeft},
			{XFrac: 0.25, YFrac: 0.88, WFrac: 0.50, HFrac: 0.09, Hint: HintTop},
			{XFrac: 0.0, YFrac: 0.42, WFrac: 1.0, HFrac: 0.16, Hint: HintVertical},
			{XFrac: 0.30, YFrac: 0.30, WFrac: 0.40, HFrac: 0.40, Hint: HintHorizontal},
		},
	},
}

// DefaultProfile returns the catalog used when nothing else is configured.
func DefaultProfile() Profile {
	return builtinProfiles[0]
}

// ProfileByName looks up a built-in catalog.
func ProfileByName(name string) (Profile, error) {
	for _, p := range builtinProfiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, &EngineError{
		Operation: "profile lookup",
		Details:   fmt.Sprintf("unknown profile %q", name),
	}
}

// ProfileNames lists the built-in catalogs for usage text.
func ProfileNames() []string {
	names := make([]string, len(builtinProfiles))
	for i, p := range builtinProfiles {
		names[i] = p.Name
	}
	return names
}

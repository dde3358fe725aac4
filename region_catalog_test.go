// region_catalog_test.go - Tests for region catalogs and pixel mapping

package main

import "testing"

// TestBuiltinProfilesValid verifies every shipped region obeys the
// fractional invariant.
func TestBuiltinProfilesValid(t *testing.T) {
	for _, name := range ProfileNames() {
		p, err := ProfileByName(name)
		if err != nil {
			t.Fatalf("ProfileByName(%q) error: %v", name, err)
		}
		if len(p.Regions) == 0 {
			t.Errorf("profile %q has no regions", name)
		}
		for i, r := range p.Regions {
			if !r.Valid() {
				t.Errorf("profile %q region %d invalid: %+v", name, i, r)
			}
		}
	}
}

// TestDefaultProfileLayout pins the default catalog: corner badge,
// bottom-right logo, caption band.
func TestDefaultProfileLayout(t *testing.T) {
	p := DefaultProfile()
	if p.Name != "default" {
		t.Fatalf("default profile name %q, expected \"default\"", p.Name)
	}
	if len(p.Regions) != 3 {
		t.Fatalf("default profile has %d regions, expected 3", len(p.Regions))
	}
	hints := []DirectionHint{HintRight, HintLeft, HintTop}
	for i, want := range hints {
		if p.Regions[i].Hint != want {
			t.Errorf("region %d hint %v, expected %v", i, p.Regions[i].Hint, want)
		}
	}
}

func TestProfileByName_Unknown(t *testing.T) {
	_, err := ProfileByName("nope")
	if err == nil {
		t.Fatal("ProfileByName(\"nope\") should fail")
	}
}

// TestPixelRect_Scaling checks fraction-to-pixel conversion at a known
// frame size.
func TestPixelRect_Scaling(t *testing.T) {
	r := Region{XFrac: 0.25, YFrac: 0.5, WFrac: 0.5, HFrac: 0.25, Hint: HintRight}
	pr := r.PixelRect(1920, 1080)
	if pr.X != 480 || pr.Y != 540 {
		t.Errorf("origin (%d,%d), expected (480,540)", pr.X, pr.Y)
	}
	if pr.W != 960 || pr.H != 270 {
		t.Errorf("size %dx%d, expected 960x270", pr.W, pr.H)
	}
	if pr.Right() != 1440 || pr.Bottom() != 810 {
		t.Errorf("edges (%d,%d), expected (1440,810)", pr.Right(), pr.Bottom())
	}
}

// TestPixelRect_MinimumExtent verifies tiny fractions on tiny frames still
// produce at least one pixel.
func TestPixelRect_MinimumExtent(t *testing.T) {
	r := Region{XFrac: 0.001, YFrac: 0.001, WFrac: 0.001, HFrac: 0.001, Hint: HintRight}
	pr := r.PixelRect(32, 32)
	if pr.W < 1 || pr.H < 1 {
		t.Fatalf("pixel rect %dx%d, expected at least 1x1", pr.W, pr.H)
	}
	if pr.Right() > 32 || pr.Bottom() > 32 {
		t.Fatalf("pixel rect %+v spills outside 32x32 frame", pr)
	}
}

// TestPixelRect_FullFrame checks the 1.0-fraction band stays inside the
// frame.
func TestPixelRect_FullFrame(t *testing.T) {
	r := Region{XFrac: 0, YFrac: 0.42, WFrac: 1.0, HFrac: 0.16, Hint: HintVertical}
	pr := r.PixelRect(1280, 720)
	if pr.X != 0 || pr.W != 1280 {
		t.Errorf("band x=%d w=%d, expected x=0 w=1280", pr.X, pr.W)
	}
	if pr.Bottom() > 720 {
		t.Errorf("band bottom %d exceeds frame height", pr.Bottom())
	}
}

func TestRegionValid(t *testing.T) {
	cases := []struct {
		region Region
		valid  bool
	}{
		{Region{XFrac: 0.1, YFrac: 0.1, WFrac: 0.5, HFrac: 0.5}, true},
		{Region{XFrac: 0, YFrac: 0, WFrac: 1, HFrac: 1}, true},
		{Region{XFrac: 0.6, YFrac: 0.1, WFrac: 0.5, HFrac: 0.2}, false},
		{Region{XFrac: 0.1, YFrac: 0.9, WFrac: 0.2, HFrac: 0.2}, false},
		{Region{XFrac: -0.1, YFrac: 0.1, WFrac: 0.2, HFrac: 0.2}, false},
		{Region{XFrac: 0.1, YFrac: 0.1, WFrac: 0, HFrac: 0.2}, false},
	}
	for i, c := range cases {
		if got := c.region.Valid(); got != c.valid {
			t.Errorf("case %d: Valid() = %v, expected %v for %+v", i, got, c.valid, c.region)
		}
	}
}

func TestParseHint(t *testing.T) {
	for _, name := range []string{"left", "right", "top", "bottom", "horizontal", "vertical"} {
		h, ok := ParseHint(name)
		if !ok {
			t.Errorf("ParseHint(%q) failed", name)
		}
		if h.String() != name {
			t.Errorf("ParseHint(%q).String() = %q", name, h.String())
		}
	}
	if _, ok := ParseHint("sideways"); ok {
		t.Error("ParseHint(\"sideways\") should fail")
	}
	if h, ok := ParseHint("  Right "); !ok || h != HintRight {
		t.Error("ParseHint should trim and lowercase")
	}
}

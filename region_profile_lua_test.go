// region_profile_lua_test.go - Tests for Lua-scripted region profiles

package main

import (
	"os"
	"path/filepath"
	"testing"
)

// writeLuaProfile drops a profile script into the test temp dir.
func writeLuaProfile(t *testing.T, filename, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write lua profile: %v", err)
	}
	return path
}

// TestLoadLuaProfile parses a complete script with a named profile.
func TestLoadLuaProfile(t *testing.T) {
	path := writeLuaProfile(t, "broadcast.lua", `
name = "broadcast"
regions = {
	{ x = 0.02, y = 0.03, w = 0.25, h = 0.08, hint = "right" },
	{ x = 0.70, y = 0.85, w = 0.25, h = 0.10, hint = "left" },
}
`)
	p, err := LoadLuaProfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "broadcast" {
		t.Errorf("profile name %q, expected %q", p.Name, "broadcast")
	}
	if len(p.Regions) != 2 {
		t.Fatalf("region count %d, expected 2", len(p.Regions))
	}
	r := p.Regions[0]
	if r.XFrac != 0.02 || r.YFrac != 0.03 || r.WFrac != 0.25 || r.HFrac != 0.08 {
		t.Errorf("region 0 geometry %+v", r)
	}
	if r.Hint != HintRight {
		t.Errorf("region 0 hint %v, expected right", r.Hint)
	}
	if p.Regions[1].Hint != HintLeft {
		t.Errorf("region 1 hint %v, expected left", p.Regions[1].Hint)
	}
}

// TestLoadLuaProfile_NameFallsBackToFilename: a script without a name
// global is named after its file.
func TestLoadLuaProfile_NameFallsBackToFilename(t *testing.T) {
	path := writeLuaProfile(t, "studio.lua", `
regions = {
	{ x = 0.1, y = 0.1, w = 0.2, h = 0.1, hint = "horizontal" },
}
`)
	p, err := LoadLuaProfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "studio" {
		t.Errorf("profile name %q, expected the file base %q", p.Name, "studio")
	}
}

// TestLoadLuaProfile_ComputedRegions: scripts may build the table
// programmatically; only the final globals matter.
func TestLoadLuaProfile_ComputedRegions(t *testing.T) {
	path := writeLuaProfile(t, "tiled.lua", `
regions = {}
for i = 0, 2 do
	regions[#regions + 1] = { x = 0.1 + i * 0.2, y = 0.8, w = 0.15, h = 0.1, hint = "top" }
end
`)
	p, err := LoadLuaProfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(p.Regions) != 3 {
		t.Fatalf("region count %d, expected 3", len(p.Regions))
	}
	for i, r := range p.Regions {
		if r.Hint != HintTop {
			t.Errorf("region %d hint %v, expected top", i, r.Hint)
		}
		if !r.Valid() {
			t.Errorf("region %d invalid: %+v", i, r)
		}
	}
}

// TestLoadLuaProfile_MissingRegions rejects scripts without a usable
// regions table.
func TestLoadLuaProfile_MissingRegions(t *testing.T) {
	cases := []struct {
		name   string
		script string
	}{
		{"no table", `name = "empty"`},
		{"empty table", `regions = {}`},
		{"wrong type", `regions = "not a table"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeLuaProfile(t, "bad.lua", c.script)
			if _, err := LoadLuaProfile(path); err == nil {
				t.Error("script without regions accepted")
			}
		})
	}
}

// TestLoadLuaProfile_InvalidEntryRejectsProfile: one bad region poisons
// the whole profile rather than being silently dropped.
func TestLoadLuaProfile_InvalidEntryRejectsProfile(t *testing.T) {
	cases := []struct {
		name   string
		script string
	}{
		{"bad hint", `regions = { { x = 0.1, y = 0.1, w = 0.2, h = 0.1, hint = "sideways" } }`},
		{"out of range", `regions = { { x = 0.9, y = 0.1, w = 0.5, h = 0.1, hint = "left" } }`},
		{"zero size", `regions = { { x = 0.1, y = 0.1, w = 0, h = 0.1, hint = "left" } }`},
		{"non-table entry", `regions = { "nope" }`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeLuaProfile(t, "bad.lua", c.script)
			if _, err := LoadLuaProfile(path); err == nil {
				t.Error("invalid region accepted")
			}
		})
	}
}

// TestLoadLuaProfile_ScriptError surfaces Lua runtime failures.
func TestLoadLuaProfile_ScriptError(t *testing.T) {
	path := writeLuaProfile(t, "broken.lua", `error("boom")`)
	if _, err := LoadLuaProfile(path); err == nil {
		t.Error("failing script accepted")
	}
}

// TestLoadLuaProfile_MissingFile reports the open error.
func TestLoadLuaProfile_MissingFile(t *testing.T) {
	if _, err := LoadLuaProfile(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("missing file accepted")
	}
}

// region_profile_lua.go - User-defined region profiles from Lua scripts

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// LoadLuaProfile evaluates a Lua script describing a region profile. The
// script sets a global `regions` table of entries with fractional x, y, w,
// h fields and a `hint` string, plus an optional global `name`:
//
//	name = "broadcast"
//	regions = {
//	  { x = 0.02, y = 0.03, w = 0.20, h = 0.10, hint = "right" },
//	}
//
// Invalid entries reject the whole profile so a typo cannot silently
// shrink the catalog.
func LoadLuaProfile(path string) (Profile, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return Profile{}, &EngineError{Operation: "lua profile", Details: path, Err: err}
	}

	name := lua.LVAsString(L.GetGlobal("name"))
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	tbl, ok := L.GetGlobal("regions").(*lua.LTable)
	if ok && tbl.Len() == 0 {
		ok = false
	}
	if !ok {
		return Profile{}, &EngineError{Operation: "lua profile", Details: fmt.Sprintf("%s: missing or empty regions table", path)}
	}

	var (
		regions []Region
		loadErr error
	)
	tbl.ForEach(func(key, value lua.LValue) {
		if loadErr != nil {
			return
		}
		entry, ok := value.(*lua.LTable)
		if !ok {
			loadErr = &EngineError{Operation: "lua profile", Details: fmt.Sprintf("%s: regions[%s] is not a table", path, key.String())}
			return
		}
		region, err := regionFromLua(entry)
		if err != nil {
			loadErr = &EngineError{Operation: "lua profile", Details: fmt.Sprintf("%s: regions[%s]", path, key.String()), Err: err}
			return
		}
		regions = append(regions, region)
	})
	if loadErr != nil {
		return Profile{}, loadErr
	}

	return Profile{Name: name, Regions: regions}, nil
}

func regionFromLua(entry *lua.LTable) (Region, error) {
	region := Region{
		XFrac: float64(lua.LVAsNumber(entry.RawGetString("x"))),
		YFrac: float64(lua.LVAsNumber(entry.RawGetString("y"))),
		WFrac: float64(lua.LVAsNumber(entry.RawGetString("w"))),
		HFrac: float64(lua.LVAsNumber(entry.RawGetString("h"))),
	}
	hintName := lua.LVAsString(entry.RawGetString("hint"))
	hint, ok := ParseHint(hintName)
	if !ok {
		return Region{}, fmt.Errorf("unknown hint %q", hintName)
	}
	region.Hint = hint
	if !region.Valid() {
		return Region{}, fmt.Errorf("fractions out of range: x=%g y=%g w=%g h=%g", region.XFrac, region.YFrac, region.WFrac, region.HFrac)
	}
	return region, nil
}

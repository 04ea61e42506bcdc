package config

import "sort"

// Presets are tuned for common output targets. Terminal cells are roughly
// twice as tall as they are wide, hence the 0.5 stretches.
var Presets = map[string]*Config{
	"terminal": {
		Width: 80, Stretch: 0.5, Glyph: "x", Blank: " ",
		Predicate: "ink", Threshold: DefaultThreshold, Interpolator: "bilinear", Theme: "minimal",
	},
	"square": {
		Width: 64, Stretch: 1, Glyph: "x", Blank: " ",
		Predicate: "ink", Threshold: DefaultThreshold, Interpolator: "bilinear", Theme: "minimal",
	},
	"banner": {
		Width: 120, Stretch: 0.45, Glyph: "#", Blank: " ",
		Predicate: "dark", Threshold: 160, Interpolator: "catmullrom", Theme: "retro",
	},
	"thumbnail": {
		Width: 32, Stretch: 0.5, Glyph: "@", Blank: ".",
		Predicate: "ink", Threshold: DefaultThreshold, Interpolator: "nearest", Theme: "minimal",
	},
	"poster": {
		Width: 200, Stretch: 0.5, Async: true, Glyph: "x", Blank: " ",
		Predicate: "ink", Threshold: DefaultThreshold, Interpolator: "catmullrom", Theme: "cyberpunk",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

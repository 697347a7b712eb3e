// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package readability

import "github.com/pdiddy/dichter/pkg/types"

// WienerMin and WienerMax bound the Wiener index for banding only. The raw
// value stays untouched in ReadabilityMetrics.
const (
	WienerMin = 0.0
	WienerMax = 20.0
)

type fleschBand struct {
	min   float64
	level string
}

// fleschBands is ordered from the highest threshold down; the first band
// whose min the score reaches wins.
var fleschBands = []fleschBand{
	{80, "very easy"},
	{60, "easy"},
	{40, "medium"},
	{20, "hard"},
	{0, "very hard"},
}

type wienerBand struct {
	max   float64
	level string
}

// wienerBands is ordered from the lowest ceiling up; the first band whose
// max the clamped index does not exceed wins.
var wienerBands = []wienerBand{
	{4, "elementary"},
	{8, "middle school"},
	{12, "secondary"},
	{WienerMax, "academic"},
}

// audience cross-tabulates Flesch level against Wiener level.
var audience = map[string]map[string]string{
	"very easy": {
		"elementary": "children", "middle school": "general public",
		"secondary": "general public", "academic": "mixed signals",
	},
	"easy": {
		"elementary": "general public", "middle school": "general public",
		"secondary": "adult readers", "academic": "mixed signals",
	},
	"medium": {
		"elementary": "general public", "middle school": "adult readers",
		"secondary": "adult readers", "academic": "educated readers",
	},
	"hard": {
		"elementary": "mixed signals", "middle school": "educated readers",
		"secondary": "educated readers", "academic": "specialists",
	},
	"very hard": {
		"elementary": "mixed signals", "middle school": "educated readers",
		"secondary": "specialists", "academic": "specialists",
	},
}

// FleschLevel returns the band label for a Flesch Reading Ease score.
func FleschLevel(score float64) string {
	for _, b := range fleschBands {
		if score >= b.min {
			return b.level
		}
	}
	return fleschBands[len(fleschBands)-1].level
}

// WienerLevel returns the band label for a raw Wiener index, clamped to
// [WienerMin, WienerMax] first.
func WienerLevel(index float64) string {
	v := clamp(index, WienerMin, WienerMax)
	for _, b := range wienerBands {
		if v <= b.max {
			return b.level
		}
	}
	return wienerBands[len(wienerBands)-1].level
}

// Interpret maps metrics onto display bands.
func Interpret(m types.ReadabilityMetrics) types.ReadabilityBand {
	f := FleschLevel(m.FleschReadingEase)
	w := WienerLevel(m.WienerIndex)
	return types.ReadabilityBand{
		FleschLevel: f,
		WienerLevel: w,
		Audience:    audience[f][w],
	}
}

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Preset is a board size offered to players. The engine knows nothing
// about presets; callers pass the numbers through.
type Preset struct {
	Name  string
	Rows  int
	Cols  int
	Mines int
}

var Presets = []Preset{
	{Name: "easy", Rows: 9, Cols: 9, Mines: 10},
	{Name: "medium", Rows: 16, Cols: 16, Mines: 40},
	{Name: "hard", Rows: 30, Cols: 16, Mines: 99},
}

func LookupPreset(name string) (Preset, error) {
	i := slices.IndexFunc(Presets, func(p Preset) bool {
		return strings.EqualFold(p.Name, name)
	})
	if i < 0 {
		names := make([]string, len(Presets))
		for j, p := range Presets {
			names[j] = "'" + p.Name + "'"
		}
		return Preset{}, fmt.Errorf("preset must be one of %s", strings.Join(names, ", "))
	}
	return Presets[i], nil
}

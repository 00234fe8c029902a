package config

import "fmt"

// SizePreset is a named grid size.
type SizePreset struct {
	Rows int
	Cols int
}

func (p SizePreset) String() string {
	return fmt.Sprintf("%dx%d", p.Rows, p.Cols)
}

var presets = []SizePreset{
	{Rows: 15, Cols: 35},
	{Rows: 20, Cols: 50},
	{Rows: 25, Cols: 60},
	{Rows: 30, Cols: 70},
}

// Presets returns the grid sizes offered by the UI, smallest first.
func Presets() []SizePreset {
	return append([]SizePreset(nil), presets...)
}

// NextPreset returns the preset after the one matching rows x cols,
// wrapping around. A size that matches no preset yields the first one.
func NextPreset(rows, cols int) SizePreset {
	for i, p := range presets {
		if p.Rows == rows && p.Cols == cols {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}

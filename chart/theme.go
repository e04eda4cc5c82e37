package chart

import "fmt"

// Theme is a fixed palette applied uniformly to a rendered chart.
type Theme struct {
	Name       string
	Background string
	Grid       string
	Axis       string
	Line       string
	Point      string
	Text       string
}

var Light = Theme{
	Name:       "light",
	Background: "white",
	Grid:       "#e5e7eb",
	Axis:       "#9ca3af",
	Line:       "#111827",
	Point:      "#111827",
	Text:       "#111827",
}

// Dark matches the GitHub dark palette so charts blend into READMEs.
var Dark = Theme{
	Name:       "dark",
	Background: "#0d1117",
	Grid:       "#30363d",
	Axis:       "#30363d",
	Line:       "#3fb950",
	Point:      "#3fb950",
	Text:       "#c9d1d9",
}

// Themes lists every palette, in render order.
var Themes = []Theme{Light, Dark}

func Lookup(name string) (Theme, error) {
	for _, theme := range Themes {
		if theme.Name == name {
			return theme, nil
		}
	}
	return Theme{}, fmt.Errorf("chart: unknown theme %q", name)
}

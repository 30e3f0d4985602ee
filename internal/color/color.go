// Package color styles bar segments either with terminal escape sequences or
// with polybar format tags.
package color

import (
	"fmt"

	fcolor "github.com/fatih/color"
)

// Role is the semantic meaning of a styled segment.
type Role int

// 'Enum' for Role
const (
	Neutral Role = iota
	Positive
	Negative
	Title
)

// Mode selects how styling is emitted.
type Mode int

// 'Enum' for Mode
const (
	Terminal Mode = iota
	Markup
)

// Color is an entry of the fixed palette.
type Color int

// 'Enum' for Color
const (
	Normal Color = iota
	Red
	Green
	Purple
	White
	Black
	Blue
)

// Pair is a background/foreground combination.
type Pair struct {
	Bg Color
	Fg Color
}

var palette = map[Color]string{
	Normal: "#d8dee9",
	Green:  "#50fa7b",
	Red:    "#ff5555",
	Purple: "#bd93f9",
	White:  "#fff",
	Black:  "#2e3440",
	Blue:   "#80a1c1",
}

// Hex returns the markup color code of c.
func Hex(c Color) string {
	return palette[c]
}

// PairOf returns the palette pair used for a role.
func PairOf(role Role) Pair {
	switch role {
	case Positive:
		return Pair{Bg: Normal, Fg: Green}
	case Negative:
		return Pair{Bg: Normal, Fg: Red}
	case Title:
		return Pair{Bg: Blue, Fg: Black}
	default:
		return Pair{Bg: Normal, Fg: Normal}
	}
}

// Render styles text for role. Terminal styling is emitted whether or not
// stdout is a TTY, so identical input always yields identical output.
func Render(text string, role Role, mode Mode) string {
	pair := PairOf(role)
	if pair == (Pair{}) {
		return text
	}

	if mode == Markup {
		return markup(text, pair)
	}
	return terminal(text, pair)
}

func markup(text string, pair Pair) string {
	out := text
	if pair.Fg != Normal {
		out = fmt.Sprintf("%%{F%s}%s%%{F-}", Hex(pair.Fg), out)
	}
	if pair.Bg != Normal {
		out = fmt.Sprintf("%%{B%s}%s%%{B-}", Hex(pair.Bg), out)
	}
	return out
}

func terminal(text string, pair Pair) string {
	attrs := []fcolor.Attribute{foreground[pair.Fg]}
	if pair.Bg == Normal {
		attrs = append(attrs, fcolor.Bold)
	} else {
		attrs = append(attrs, background[pair.Bg])
	}

	c := fcolor.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

var foreground = map[Color]fcolor.Attribute{
	Normal: fcolor.Reset,
	Red:    fcolor.FgRed,
	Green:  fcolor.FgGreen,
	Purple: fcolor.FgMagenta,
	White:  fcolor.FgWhite,
	Black:  fcolor.FgBlack,
	Blue:   fcolor.FgBlue,
}

var background = map[Color]fcolor.Attribute{
	Red:    fcolor.BgRed,
	Green:  fcolor.BgGreen,
	Purple: fcolor.BgMagenta,
	White:  fcolor.BgWhite,
	Black:  fcolor.BgBlack,
	Blue:   fcolor.BgBlue,
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"     _         _                        _        ",
	"    / \\  _   _| |_ ___  _ __ ___   __ _| |_ __ _ ",
	"   / _ \\| | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |",
	"  / ___ \\ |_| | || (_) | | | | | | (_| | || (_| |",
	" /_/   \\_\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|",
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner outputs the ASCII art banner followed by a subtitle.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w, termenv.String("  Automata & Formal Language Simulator").Faint())
	fmt.Fprintln(w)
}

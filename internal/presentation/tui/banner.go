package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Sereno.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Calm teal-to-blue gradient
	s1 := termenv.String("  ___  ___ _ __ ___ _ __   ___  ").Foreground(p.Color("#5eead4"))
	s2 := termenv.String(" / __|/ _ \\ '__/ _ \\ '_ \\ / _ \\ ").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(" \\__ \\  __/ | |  __/ | | | (_) |").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(" |___/\\___|_|  \\___|_| |_|\\___/ ").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println()
	fmt.Println(termenv.String("  a companion for heavy days").Foreground(p.Color("#94a3b8")).Italic())
	fmt.Println()
}

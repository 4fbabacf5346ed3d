package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the terminal chat.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient, indigo to rose.
	lines := []termenv.Style{
		termenv.String("    _       _       ___ _                       ").Foreground(p.Color("#818cf8")),
		termenv.String("   /_\\  _  _| |_ ___/ __| |_ _ _ ___ __ _ _ __  ").Foreground(p.Color("#a78bfa")),
		termenv.String("  / _ \\| || |  _/ _ \\__ \\  _| '_/ -_) _' | '  \\ ").Foreground(p.Color("#c084fc")),
		termenv.String(" /_/ \\_\\\\_,_|\\__\\___/___/\\__|_| \\___\\__,_|_|_|_|").Foreground(p.Color("#e879f9")),
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println(termenv.String("  your creator assistant  "+version).Foreground(p.Color("#fb7185")).Faint())
	fmt.Println()
}

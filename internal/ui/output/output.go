// Package output provides termenv outputs with consistent color profile and
// TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile for the current environment.
// NO_COLOR forces Ascii; otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output writing to w. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Line writes one line made of an icon and a message, both in the given color.
func Line(out *termenv.Output, icon string, color lipgloss.Color, msg string) error {
	text := msg
	if icon != "" {
		text = icon + " " + msg
	}
	styled := out.String(text).Foreground(termenv.RGBColor(string(color)))
	_, err := out.WriteString(styled.String() + "\n")
	return err
}

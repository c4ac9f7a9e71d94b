// Package output formats REPL output: colored status lines and tables.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Palette selects the color set. Dark terminals get the bright variants.
type Palette int

const (
	PaletteLight Palette = iota
	PaletteDark
)

// Printer writes messages to out, errors and warnings to err.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
	palette   Palette
}

// ResolveColors reports whether colored output should be used. NO_COLOR
// and TERM=dumb always win.
func ResolveColors(disabled bool) bool {
	if disabled {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) Out() io.Writer { return p.out }

// SetPalette switches between the light and dark color sets.
func (p *Printer) SetPalette(pal Palette) {
	p.palette = pal
}

func (p *Printer) paint(w io.Writer, attr color.Attribute, format string, args ...any) {
	if !p.useColors {
		fmt.Fprintf(w, format, args...)
		return
	}
	if p.palette == PaletteDark {
		// FgHi* sits 60 above the matching Fg*.
		attr += 60
	}
	c := color.New(attr)
	c.EnableColor()
	c.Fprintf(w, format, args...)
}

func (p *Printer) Info(format string, args ...any) {
	p.paint(p.out, color.FgCyan, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		p.paint(p.out, color.FgGreen, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		p.paint(p.err, color.FgYellow, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		p.paint(p.err, color.FgRed, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

// Print writes a plain line.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a title underlined to its width.
func (p *Printer) Header(title string) {
	if p.useColors {
		c := color.New(color.Bold)
		c.EnableColor()
		c.Fprintf(p.out, "\n%s\n", title)
		fmt.Fprintf(p.out, "%s\n", strings.Repeat("─", len([]rune(title))))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// Field prints an aligned "label: value" line.
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.out, "  %-14s %s\n", p.Dim(label+":"), value)
}

func (p *Printer) Bold(text string) string {
	if !p.useColors {
		return text
	}
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(text)
}

func (p *Printer) Dim(text string) string {
	if !p.useColors {
		return text
	}
	c := color.New(color.Faint)
	c.EnableColor()
	return c.Sprint(text)
}

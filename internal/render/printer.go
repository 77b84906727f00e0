package render

import (
	"fmt"
	"io"

	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/settings"
)

// Printer writes a menu as plain text, one heading per group and one
// indented line per component.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintMenu writes the restaurant name, the date line and every group
// of the menu, honoring the display toggles. A nil menu or one without
// groups prints the no-menu message instead.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMenu(name string, m *menu.TodayMenu, s settings.Settings) {
	if name != "" {
		fmt.Fprintln(p.out, name)
	}
	if line := DateAndTimeLine(m, s.Language); line != "" {
		fmt.Fprintln(p.out, line)
	}
	if m == nil || len(m.Groups) == 0 {
		fmt.Fprintln(p.out, UIText(s.Language, "noMenu"))
		return
	}
	for _, g := range m.Groups {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, MenuHeading(g, s))
		for _, c := range g.Components {
			fmt.Fprintf(p.out, "  %s\n", ComponentLine(c, s.ShowAllergens))
		}
	}
}

// PrintNotice writes a status line such as the stale or error message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNotice(text string) {
	if text != "" {
		fmt.Fprintf(p.out, "[%s]\n", text)
	}
}

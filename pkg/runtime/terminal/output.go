package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/property-atlas/pkg/runtime/terminal/export"
	"golang.org/x/term"
)

const (
	formatAuto     = "auto"
	formatTable    = "table"
	formatMarkdown = "markdown"
)

// newReporter picks the markdown renderer for "auto" only when w is an
// interactive terminal.
func newReporter(w io.Writer, format string) (*export.Reporter, error) {
	switch format {
	case formatTable:
		return export.NewReporter(w), nil
	case formatMarkdown:
		return export.NewReporter(w, export.WithMarkdown()), nil
	case formatAuto, "":
		if isTerminal(w) {
			return export.NewReporter(w, export.WithMarkdown()), nil
		}
		return export.NewReporter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

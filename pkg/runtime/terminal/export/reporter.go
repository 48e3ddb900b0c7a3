package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
)

type TableConfig struct {
	MinColumnWidth int
	MaxColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinColumnWidth: 8,
		MaxColumnWidth: 40,
	}
}

type Reporter struct {
	writer   io.Writer
	config   TableConfig
	markdown bool
}

type Option func(*Reporter)

// WithMarkdown renders reports as markdown through glamour instead of plain
// tables.
func WithMarkdown() Option {
	return func(r *Reporter) {
		r.markdown = true
	}
}

func NewReporter(writer io.Writer, opts ...Option) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (c *Reporter) Handle(report *Report) error {
	if c.markdown {
		out, err := glamour.Render(Markdown(report), "auto")
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = io.WriteString(c.writer, out)
		return err
	}
	return c.table(report)
}

func (c *Reporter) table(report *Report) error {
	funcMap := template.FuncMap{
		"widths": c.widths,
		"formatRow": func(widths []int, cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = truncate(cells[i], w)
				}
				fmt.Fprintf(&b, " %-*s |", w, cell)
			}
			return b.String()
		},
		"separator": func(widths []int) string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
	}

	tmpl := `
{{.Title}}
{{if .Subtitle}}{{.Subtitle}}
{{end}}{{range .Sections}}
=== {{.Title}} ===
{{$w := widths .}}{{separator $w}}
{{formatRow $w .Columns}}
{{separator $w}}
{{range .Rows}}{{formatRow $w .}}
{{end}}{{separator $w}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func (c *Reporter) widths(s Section) []int {
	widths := make([]int, len(s.Columns))
	for i, col := range s.Columns {
		widths[i] = max(c.config.MinColumnWidth, utf8.RuneCountInString(col))
	}
	for _, row := range s.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], c.config.MaxColumnWidth)
	}
	return widths
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}

// Markdown renders the report as a markdown document.
func Markdown(report *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	if report.Subtitle != "" {
		fmt.Fprintf(&b, "%s\n\n", report.Subtitle)
	}
	for _, s := range report.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		b.WriteString("| " + strings.Join(s.Columns, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(s.Columns)) + "\n")
		for _, row := range s.Rows {
			b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

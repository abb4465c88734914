package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

const rule = 50

// Printer writes human-facing progress for a sync run.
type Printer struct {
	w     io.Writer
	theme Theme
}

func NewPrinter(w io.Writer, theme Theme) *Printer {
	return &Printer{w: w, theme: theme}
}

var _ ports.Progress = (*Printer)(nil)

func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintln(p.w, p.theme.Step.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Generated(content string) {
	lines := len(strings.Split(content, "\n"))
	fmt.Fprintf(p.w, "%s %s\n\n",
		p.theme.Success.Render("✅ Generated "+humanize.Comma(int64(lines))+" lines of type definitions"),
		p.theme.Faint.Render("("+humanize.Bytes(uint64(len(content)))+")"),
	)
}

func (p *Printer) TemplatesFound(n int) {
	fmt.Fprintln(p.w, p.theme.Title.Render(fmt.Sprintf("Found %d templates to update:", n)))
	fmt.Fprintln(p.w)
}

func (p *Printer) TemplateSkipped(t domain.TemplateRef, reason string) {
	fmt.Fprintln(p.w, p.theme.Warn.Render(fmt.Sprintf("⚠️  Skipping %s: %s", t.Name, reason)))
}

func (p *Printer) TemplateUpdated(t domain.TemplateRef, res domain.InjectResult) {
	msg := fmt.Sprintf("✅ Updated %s: %s lines", t.Name, humanize.Comma(int64(res.Lines)))
	if !res.Changed {
		msg += " (unchanged)"
	}
	fmt.Fprintln(p.w, p.theme.Success.Render(msg))
	fmt.Fprintln(p.w)
}

func (p *Printer) TemplateFailed(t domain.TemplateRef, err error) {
	fmt.Fprintln(p.w, p.theme.Fail.Render(fmt.Sprintf("❌ Failed %s", t.Name)))
	fmt.Fprintln(p.w)
}

func (p *Printer) Summary(r domain.Report) {
	fmt.Fprintln(p.w, strings.Repeat("=", rule))
	line := fmt.Sprintf("Summary: %d succeeded, %d failed", r.Succeeded(), r.Failed())
	if r.OK() {
		fmt.Fprintln(p.w, p.theme.Success.Render(line))
		return
	}
	fmt.Fprintln(p.w, p.theme.Fail.Render(line))
}

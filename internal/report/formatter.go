package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/juparave/appverify/internal/domain"
)

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatSARIF    = "sarif"
)

const ruleLine = "=================================================="

// Formatter renders a RunResult and optionally persists it
type Formatter struct {
	outputDir string
}

// NewFormatter creates a Formatter that saves reports into outputDir.
// An empty outputDir disables saving.
func NewFormatter(outputDir string) *Formatter {
	return &Formatter{outputDir: outputDir}
}

// Render writes the result to w in the given format
func (f *Formatter) Render(w io.Writer, res *domain.RunResult, format string) error {
	switch format {
	case "", FormatText:
		return f.renderText(w, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, f.ToMarkdown(res))
		return err
	case FormatJSON:
		return f.renderJSON(w, res)
	case FormatSARIF:
		return f.renderSARIF(w, res)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Write saves the rendered result into the output directory and returns its path
func (f *Formatter) Write(res *domain.RunResult, format string) (string, error) {
	if f.outputDir == "" {
		return "", nil
	}

	if err := os.MkdirAll(f.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf, res, format); err != nil {
		return "", err
	}

	name := fmt.Sprintf("verify-%s.%s", res.StartedAt.Format("2006-01-02-150405"), extension(format))
	path := filepath.Join(f.outputDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func extension(format string) string {
	switch format {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	case FormatSARIF:
		return "sarif"
	default:
		return "txt"
	}
}

func (f *Formatter) renderText(w io.Writer, res *domain.RunResult) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	errHeader := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnHeader := r.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	var sb strings.Builder
	sb.WriteString("\n" + ruleLine + "\n")
	sb.WriteString(title.Render("VERIFICATION RESULT") + "\n")
	sb.WriteString(ruleLine + "\n")

	if !res.HasFindings() {
		sb.WriteString("✅ All OK! No problems found.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	if res.ErrorCount() > 0 {
		sb.WriteString("\n" + errHeader.Render(fmt.Sprintf("❌ ERRORS (%d):", res.ErrorCount())) + "\n")
		for _, e := range res.Errors {
			sb.WriteString(fmt.Sprintf("   %s %s\n", e.Icon(), e.Message))
		}
	}

	if res.WarningCount() > 0 {
		sb.WriteString("\n" + warnHeader.Render(fmt.Sprintf("⚠️  WARNINGS (%d):", res.WarningCount())) + "\n")
		for _, wf := range res.Warnings {
			sb.WriteString(fmt.Sprintf("   %s %s\n", wf.Icon(), wf.Message))
		}
	}

	sb.WriteString("\n" + ruleLine + "\n")
	sb.WriteString(Verdict(res) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Verdict returns the final advisory line
func Verdict(res *domain.RunResult) string {
	switch {
	case res.ErrorCount() > 0:
		return "❌ Fix the errors before compiling."
	case res.WarningCount() > 0:
		return "✅ You can compile, but review the warnings."
	default:
		return "✅ All OK! No problems found."
	}
}

// ToMarkdown renders the result as a markdown document
func (f *Formatter) ToMarkdown(res *domain.RunResult) string {
	var sb strings.Builder
	sb.WriteString("## Verification Result\n\n")
	sb.WriteString(fmt.Sprintf("Project: `%s`\n\n", res.Root))

	if !res.HasFindings() {
		sb.WriteString("✅ All OK! No problems found.\n")
		return sb.String()
	}

	writeSection := func(header string, findings []domain.Finding) {
		if len(findings) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("### %s (%d)\n", header, len(findings)))
		for _, fd := range findings {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", fd.Check, fd.Message))
		}
		sb.WriteString("\n")
	}
	writeSection("Errors", res.Errors)
	writeSection("Warnings", res.Warnings)

	sb.WriteString(Verdict(res) + "\n")
	return sb.String()
}

// ToHTML renders the result as an HTML email body
func (f *Formatter) ToHTML(res *domain.RunResult) string {
	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: sans-serif\">\n")
	sb.WriteString("<h2>Verification Result</h2>\n")
	sb.WriteString(fmt.Sprintf("<p>Project: <code>%s</code></p>\n", html.EscapeString(res.Root)))

	writeSection := func(header, color string, findings []domain.Finding) {
		if len(findings) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("<h3 style=\"color: %s\">%s (%d)</h3>\n<ul>\n", color, header, len(findings)))
		for _, fd := range findings {
			sb.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(fd.Message)))
		}
		sb.WriteString("</ul>\n")
	}
	writeSection("Errors", "#c0392b", res.Errors)
	writeSection("Warnings", "#d68910", res.Warnings)

	sb.WriteString(fmt.Sprintf("<p><strong>%s</strong></p>\n", html.EscapeString(Verdict(res))))
	sb.WriteString("</body></html>\n")
	return sb.String()
}

func (f *Formatter) renderJSON(w io.Writer, res *domain.RunResult) error {
	output := struct {
		*domain.RunResult
		ErrorCount   int `json:"error_count"`
		WarningCount int `json:"warning_count"`
		ExitCode     int `json:"exit_code"`
	}{
		RunResult:    res,
		ErrorCount:   res.ErrorCount(),
		WarningCount: res.WarningCount(),
		ExitCode:     res.ExitCode(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

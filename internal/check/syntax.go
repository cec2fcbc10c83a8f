package check

import (
	"regexp"
	"strings"

	"github.com/juparave/appverify/internal/report"
	"github.com/juparave/appverify/internal/scanner"
	"github.com/juparave/appverify/internal/util"
)

// Finding identifiers for the per-file syntax heuristics.
const (
	BalanceCheckName = "unbalanced-delimiters"
	ImportCheckName  = "unused-import"
	ReadCheckName    = "read-error"
)

// SourceScanCheck walks the source tree and runs the balance and import
// heuristics on each file, up to a fixed number of files.
type SourceScanCheck struct {
	dir   string
	ext   string
	limit int
}

// NewSourceScanCheck creates the source scan step.
func NewSourceScanCheck(dir, ext string, limit int) *SourceScanCheck {
	return &SourceScanCheck{dir: dir, ext: ext, limit: limit}
}

// Name returns the unique identifier for this check.
func (c *SourceScanCheck) Name() string { return "kotlin-syntax" }

// Title returns the progress label.
func (c *SourceScanCheck) Title() string { return "Checking Kotlin syntax" }

// Run scans each discovered file. A file that cannot be read becomes an
// error finding and the scan moves on.
func (c *SourceScanCheck) Run(ctx *Context) {
	if !util.DirExists(ctx.FS, c.dir) {
		ctx.Logger.Debugw("source directory absent, skipping", "dir", c.dir)
		return
	}

	files, err := scanner.New(ctx.FS, ctx.Logger).FindSourceFiles(c.dir, c.ext, c.limit)
	if err != nil {
		ctx.Reporter.Errorf(ReadCheckName, c.dir, "Error walking %s: %v", c.dir, err)
		return
	}

	for _, path := range files {
		content, err := util.ReadText(ctx.FS, path)
		if err != nil {
			ctx.Reporter.Errorf(ReadCheckName, path, "Error reading %s: %v", path, err)
			continue
		}
		ctx.FilesScanned++
		CheckBalance(ctx.Reporter, path, content)
		CheckImports(ctx.Reporter, path, content)
	}
}

// CheckBalance counts '{'/'}' and '('/')' across the whole text and reports
// each pair whose counts differ. Strings and comments are not skipped.
func CheckBalance(rep *report.Reporter, path, content string) {
	openBraces := strings.Count(content, "{")
	closeBraces := strings.Count(content, "}")
	if openBraces != closeBraces {
		rep.Errorf(BalanceCheckName, path, "Unbalanced braces in %s: %d open, %d closed", path, openBraces, closeBraces)
	}

	openParens := strings.Count(content, "(")
	closeParens := strings.Count(content, ")")
	if openParens != closeParens {
		rep.Errorf(BalanceCheckName, path, "Unbalanced parentheses in %s: %d open, %d closed", path, openParens, closeParens)
	}
}

var importLine = regexp.MustCompile(`(?m)^import[ \t]+([^\r\n]+?)[ \t]*\r?$`)

// CheckImports warns about imports whose symbol never appears outside the
// import statement. Any textual occurrence counts as a use, comments included.
func CheckImports(rep *report.Reporter, path, content string) {
	for _, m := range importLine.FindAllStringSubmatchIndex(content, -1) {
		imp := importPath(content[m[2]:m[3]])

		symbol := importSymbol(imp)
		if symbol == "" {
			continue
		}

		before, after := content[:m[0]], content[m[1]:]
		if strings.Contains(before, symbol) || strings.Contains(after, symbol) {
			continue
		}
		rep.Warnf(ImportCheckName, path, "Possibly unused import: %s in %s", imp, path)
	}
}

// importPath drops a trailing line comment and semicolon from the text
// following the import keyword.
func importPath(raw string) string {
	if i := strings.Index(raw, "//"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ";"))
}

// importSymbol returns the name an import brings into scope: the alias for
// "a.b.C as D", the last dotted segment otherwise, and "" for wildcards.
func importSymbol(imp string) string {
	if i := strings.Index(imp, " as "); i >= 0 {
		return strings.TrimSpace(imp[i+len(" as "):])
	}
	segment := imp[strings.LastIndex(imp, ".")+1:]
	if segment == "*" {
		return ""
	}
	return strings.TrimSpace(segment)
}

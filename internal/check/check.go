// Package check implements the pre-compile verification rules. Every check
// is a textual heuristic: it counts characters or matches markers and never
// parses the language.
package check

import (
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/report"
)

// Context carries what a check needs to inspect the project and record findings.
type Context struct {
	// FS is rooted at the project directory; all paths are relative to it.
	FS       billy.Filesystem
	Reporter *report.Reporter
	Logger   *zap.SugaredLogger

	// FilesScanned is incremented by checks that read source files.
	FilesScanned int
}

// NewContext creates a Context with a fresh Reporter.
func NewContext(fs billy.Filesystem, logger *zap.SugaredLogger) *Context {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Context{
		FS:       fs,
		Reporter: report.NewReporter(),
		Logger:   logger,
	}
}

// Check is a single verification step.
type Check interface {
	// Name is the identifier attached to findings, e.g. "required-files".
	Name() string
	// Title is the progress label printed before the check runs.
	Title() string
	// Run inspects the project and records findings on ctx.Reporter.
	Run(ctx *Context)
}

// Sequence returns the checks in the order they must run.
func Sequence(rules config.RulesConfig) []Check {
	return []Check{
		NewRequiredFilesCheck(rules.RequiredFiles),
		NewSourceScanCheck(rules.SourceDir, rules.SourceExtension, rules.MaxSourceFiles),
		NewSchemaCheck(rules.SchemaFile, rules.EntityMarker, rules.DaoMarker, rules.ContainerClass),
		NewDependencyCheck(rules.BuildFile, rules.Dependencies),
		NewAPIVersionCheck(rules.UIFiles, rules.LegacyMarker, rules.ModernMarker),
	}
}

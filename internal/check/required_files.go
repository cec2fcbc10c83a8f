package check

import (
	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/util"
)

// RequiredFilesCheck reports every listed project file that is missing.
type RequiredFilesCheck struct {
	files []config.RequiredFile
}

// NewRequiredFilesCheck creates the check for the given table.
func NewRequiredFilesCheck(files []config.RequiredFile) *RequiredFilesCheck {
	return &RequiredFilesCheck{files: files}
}

// Name returns the unique identifier for this check.
func (c *RequiredFilesCheck) Name() string { return "required-files" }

// Title returns the progress label.
func (c *RequiredFilesCheck) Title() string { return "Checking essential files" }

// Run emits one error per missing file.
func (c *RequiredFilesCheck) Run(ctx *Context) {
	for _, f := range c.files {
		if util.FileExists(ctx.FS, f.Path) {
			continue
		}
		ctx.Reporter.Errorf(c.Name(), f.Path, "Missing %s: %s", f.Description, f.Path)
	}
}

package check

import (
	"strings"

	"github.com/juparave/appverify/internal/util"
)

// APIVersionCheck flags UI files that use the legacy theming symbol without
// importing the modern namespace. Both conditions must hold.
type APIVersionCheck struct {
	files        []string
	legacyMarker string
	modernMarker string
}

// NewAPIVersionCheck creates the check for the given UI files.
func NewAPIVersionCheck(files []string, legacyMarker, modernMarker string) *APIVersionCheck {
	return &APIVersionCheck{
		files:        files,
		legacyMarker: legacyMarker,
		modernMarker: modernMarker,
	}
}

// Name returns the unique identifier for this check.
func (c *APIVersionCheck) Name() string { return "material3" }

// Title returns the progress label.
func (c *APIVersionCheck) Title() string { return "Checking UI API versions" }

// Run emits one warning per UI file matching legacy AND NOT modern.
func (c *APIVersionCheck) Run(ctx *Context) {
	for _, file := range c.files {
		if !util.FileExists(ctx.FS, file) {
			continue
		}

		content, err := util.ReadText(ctx.FS, file)
		if err != nil {
			ctx.Reporter.Errorf(ReadCheckName, file, "Error reading %s: %v", file, err)
			continue
		}

		if c.legacyMarker != "" && strings.Contains(content, c.legacyMarker) && !strings.Contains(content, c.modernMarker) {
			ctx.Reporter.Warnf(c.Name(), file, "Possible Material2 usage instead of Material3: %s", file)
		}
	}
}

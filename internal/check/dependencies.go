package check

import (
	"strings"

	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/util"
)

// DependencyCheck verifies the build file mentions every required library.
// Matching is a case-insensitive substring search over the whole file.
type DependencyCheck struct {
	buildFile string
	required  []config.Dependency
}

// NewDependencyCheck creates the check for the given build file and table.
func NewDependencyCheck(buildFile string, required []config.Dependency) *DependencyCheck {
	return &DependencyCheck{buildFile: buildFile, required: required}
}

// Name returns the unique identifier for this check.
func (c *DependencyCheck) Name() string { return "gradle-dependencies" }

// Title returns the progress label.
func (c *DependencyCheck) Title() string { return "Checking Gradle dependencies" }

// Run emits one error per missing dependency.
func (c *DependencyCheck) Run(ctx *Context) {
	if !util.FileExists(ctx.FS, c.buildFile) {
		ctx.Logger.Debugw("build file absent, skipping", "file", c.buildFile)
		return
	}

	content, err := util.ReadText(ctx.FS, c.buildFile)
	if err != nil {
		ctx.Reporter.Errorf(ReadCheckName, c.buildFile, "Error reading %s: %v", c.buildFile, err)
		return
	}

	lower := strings.ToLower(content)
	for _, dep := range c.required {
		if strings.Contains(lower, strings.ToLower(dep.Keyword)) {
			continue
		}
		ctx.Reporter.Errorf(c.Name(), c.buildFile, "Missing dependency: %s", dependencyName(dep))
	}
}

func dependencyName(dep config.Dependency) string {
	if dep.Name != "" {
		return dep.Name
	}
	return dep.Keyword
}

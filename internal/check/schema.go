package check

import (
	"path"
	"strings"

	"github.com/juparave/appverify/internal/util"
)

// SchemaCheck verifies the Room database file declares entities, DAOs and
// the database class. Each missing marker is its own finding.
type SchemaCheck struct {
	file           string
	entityMarker   string
	daoMarker      string
	containerClass string
}

// NewSchemaCheck creates the check for the given persistence file.
func NewSchemaCheck(file, entityMarker, daoMarker, containerClass string) *SchemaCheck {
	return &SchemaCheck{
		file:           file,
		entityMarker:   entityMarker,
		daoMarker:      daoMarker,
		containerClass: containerClass,
	}
}

// Name returns the unique identifier for this check.
func (c *SchemaCheck) Name() string { return "room-schema" }

// Title returns the progress label.
func (c *SchemaCheck) Title() string { return "Checking Room configuration" }

// Run inspects the schema file. A missing file is left to RequiredFilesCheck.
func (c *SchemaCheck) Run(ctx *Context) {
	if !util.FileExists(ctx.FS, c.file) {
		ctx.Logger.Debugw("schema file absent, skipping", "file", c.file)
		return
	}

	content, err := util.ReadText(ctx.FS, c.file)
	if err != nil {
		ctx.Reporter.Errorf(ReadCheckName, c.file, "Error reading %s: %v", c.file, err)
		return
	}

	base := path.Base(c.file)
	if !containsMarker(content, c.entityMarker) {
		ctx.Reporter.Errorf(c.Name(), c.file, "%s has no %s definitions", base, c.entityMarker)
	}
	if !containsMarker(content, c.daoMarker) {
		ctx.Reporter.Errorf(c.Name(), c.file, "%s has no %s definitions", base, c.daoMarker)
	}
	if c.containerClass != "" && !strings.Contains(content, "abstract class "+c.containerClass) {
		ctx.Reporter.Errorf(c.Name(), c.file, "Missing class %s", c.containerClass)
	}
}

// containsMarker reports whether a non-empty marker appears in content.
// An empty marker is treated as present so that unset rules never fire.
func containsMarker(content, marker string) bool {
	return marker == "" || strings.Contains(content, marker)
}

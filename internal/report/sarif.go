package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/juparave/appverify/internal/domain"
)

const sarifSchema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"` // error, warning
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

// ToolVersion is reported as the SARIF driver version
var ToolVersion = "0.1.0"

func (f *Formatter) renderSARIF(w io.Writer, res *domain.RunResult) error {
	findings := res.Findings()
	results := make([]sarifResult, 0, len(findings))
	for _, fd := range findings {
		r := sarifResult{
			RuleID:  fd.Check,
			Level:   sevToLevel(fd.Severity),
			Message: sarifMessage{Text: strings.TrimSpace(fd.Message)},
		}
		if fd.File != "" {
			r.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: toURI(fd.File)},
				},
			}}
		}
		results = append(results, r)
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchema,
		Runs: []sarifRun{
			{
				Tool:    sarifTool{Driver: sarifDriver{Name: "appverify", Version: ToolVersion}},
				Results: results,
			},
		},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func sevToLevel(s domain.Severity) string {
	if s == domain.SeverityError {
		return "error"
	}
	return "warning"
}

func toURI(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	return strings.TrimPrefix(p, "./")
}

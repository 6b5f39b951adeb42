package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// defaultTemplate is the schema file used for labels without a
// dedicated template.
const defaultTemplate = "default.json"

// defaultFields is the built-in schema used when a template file
// cannot be read, so ticket creation never fails on a missing file.
var defaultFields = []string{
	"employee_name",
	"employee_id",
	"SL_competency",
	"floor_information",
	"issue_type",
	"problem_description",
	"urgency",
}

// TemplateRegistry resolves issue-type labels to ticket template
// files and loads their ordered field schemas.
type TemplateRegistry struct {
	dir string
}

// NewTemplateRegistry creates a registry over the given templates directory.
func NewTemplateRegistry(dir string) *TemplateRegistry {
	return &TemplateRegistry{dir: dir}
}

// TemplatePath maps an issue-type label to its template file. Labels
// outside the known set resolve to the default template, never an error.
func (r *TemplateRegistry) TemplatePath(issueType string) string {
	for _, known := range KnownIssueTypes {
		if issueType == known {
			return filepath.Join(r.dir, issueType+".json")
		}
	}
	return filepath.Join(r.dir, defaultTemplate)
}

// LoadFields reads the ordered field schema from a template file.
// Unreadable or malformed templates fall back to the built-in schema.
func (r *TemplateRegistry) LoadFields(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return append([]string(nil), defaultFields...)
	}

	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return append([]string(nil), defaultFields...)
	}
	return fields
}

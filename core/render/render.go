package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"mvp-orchestrator/core/models"
)

// Artifact file names consumed by the build agent.
const (
	SpecsFile        = "MVP_SPECS.md"
	InstructionsFile = "DEVELOPMENT_INSTRUCTIONS.md"
	DataFile         = "job-data.json"
	EnvFile          = "job-env.sh"
)

// ValidationError reports a record field required for rendering that is
// absent and has no derivable default.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

const specsTemplate = `# MVP Specifications for {{.BusinessName}}

## Business Overview
- **Business Name**: {{.BusinessName}}
- **Tagline**: {{.Tagline}}
- **Description**: {{.Description}}
- **Target Audience**: {{.TargetAudience}}

## Key Features
{{range .KeyFeatures}}- {{.}}
{{end}}
## Technical Requirements
{{.TechnicalRequirements}}

## Design Preferences
{{.DesignPreferences}}

## Development Guidelines
{{.MVPSpecs}}
`

const instructionsFallback = `# Development Instructions

Build the MVP described in MVP_SPECS.md.

- Implement every key feature listed there, nothing speculative.
- Follow the technical requirements and design preferences exactly.
- Keep the implementation deployable as-is: working build, no placeholder pages.
- Commit incrementally with descriptive messages.
`

// Renderer materializes a job record into the artifact files consumed by the
// downstream build agent. Rendering is deterministic: the same record always
// produces byte-identical files.
type Renderer struct {
	defaults Defaults
	tmpl     *template.Template
}

// NewRenderer creates a renderer with the given defaults
func NewRenderer(defaults Defaults) *Renderer {
	return &Renderer{
		defaults: defaults,
		tmpl:     template.Must(template.New("specs").Parse(specsTemplate)),
	}
}

// jobView is the normalized, render-ready projection of a job record.
type jobView struct {
	BusinessName          string
	Tagline               string
	Description           string
	TargetAudience        string
	KeyFeatures           []string
	TechnicalRequirements string
	DesignPreferences     string
	MVPSpecs              string
	DevelopmentPrompts    string
	RepoName              string
	UserEmail             string
	SanitizedName         string
	UserID                string
	ProductID             string
}

// Render writes the four artifacts for job into outDir, creating the
// directory if needed. raw is the record's generic form and is dumped
// verbatim to job-data.json; when nil the typed record is dumped instead.
func (r *Renderer) Render(job *models.JobRecord, raw map[string]interface{}, outDir string) error {
	view, err := r.normalize(job)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var specs bytes.Buffer
	if err := r.tmpl.Execute(&specs, view); err != nil {
		return fmt.Errorf("render specs: %w", err)
	}

	instructions := view.DevelopmentPrompts
	if instructions == "" {
		instructions = instructionsFallback
	}

	var dump interface{} = raw
	if raw == nil {
		dump = job
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("encode job data: %w", err)
	}

	files := []struct {
		name    string
		content []byte
	}{
		{SpecsFile, specs.Bytes()},
		{InstructionsFile, []byte(instructions)},
		{DataFile, append(data, '\n')},
		{EnvFile, []byte(envFile(view))},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(outDir, f.name), f.content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

// normalize unifies the nested and flat record shapes, deriving defaults
// where the flat shape lacks detail.
func (r *Renderer) normalize(job *models.JobRecord) (jobView, error) {
	name := job.Product.Name
	if name == "" {
		name = job.BusinessName
	}
	if name == "" {
		return jobView{}, &ValidationError{Field: "product.name"}
	}

	sanitized := job.Product.SanitizedName
	if sanitized == "" {
		sanitized = SanitizeName(name)
	}

	repoName := job.Resources.GithubRepo.Name
	if repoName == "" {
		repoName = sanitized + r.defaults.RepoSuffix
	}

	email := job.User.Email
	if email == "" {
		email = sanitized + "@" + r.defaults.EmailDomain
	}

	description := job.Product.Description
	if description == "" {
		description = job.Description
	}

	userID := job.User.ID
	if userID == "" {
		userID = job.UserID
	}
	productID := job.Product.ID
	if productID == "" {
		productID = job.ProductID
	}

	audience := job.Specifications.TargetAudience
	if audience == "" {
		audience = "General web users"
	}

	features := job.Specifications.KeyFeatures
	if len(features) == 0 {
		features = r.defaults.KeyFeatures
	}

	techReq := job.Specifications.TechnicalRequirements
	if len(techReq) == 0 {
		techReq = map[string]interface{}{}
		for k, v := range r.defaults.TechStack {
			techReq[k] = v
		}
	}
	techJSON, err := json.MarshalIndent(techReq, "", "  ")
	if err != nil {
		return jobView{}, fmt.Errorf("encode technical requirements: %w", err)
	}

	design := job.Specifications.DesignPreferences
	if design == nil {
		design = map[string]interface{}{}
	}
	designJSON, err := json.MarshalIndent(design, "", "  ")
	if err != nil {
		return jobView{}, fmt.Errorf("encode design preferences: %w", err)
	}

	mvpSpecs := job.Specifications.MVPSpecs
	if mvpSpecs == "" {
		mvpSpecs = "Build a minimal, production-ready implementation of the features above."
	}

	return jobView{
		BusinessName:          name,
		Tagline:               job.Product.Tagline,
		Description:           description,
		TargetAudience:        audience,
		KeyFeatures:           features,
		TechnicalRequirements: string(techJSON),
		DesignPreferences:     string(designJSON),
		MVPSpecs:              mvpSpecs,
		DevelopmentPrompts:    job.Development.DevelopmentPrompts,
		RepoName:              repoName,
		UserEmail:             email,
		SanitizedName:         sanitized,
		UserID:                userID,
		ProductID:             productID,
	}, nil
}

// envFile renders the shell-sourceable environment file.
func envFile(v jobView) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	exports := []struct {
		key   string
		value string
	}{
		{"BUSINESS_NAME", v.BusinessName},
		{"REPO_NAME", v.RepoName},
		{"PRODUCT_DESCRIPTION", v.Description},
		{"USER_EMAIL", v.UserEmail},
		{"SANITIZED_NAME", v.SanitizedName},
		{"USER_ID", v.UserID},
		{"PRODUCT_ID", v.ProductID},
	}
	for _, e := range exports {
		fmt.Fprintf(&b, "export %s=\"%s\"\n", e.key, shellEscape(e.value))
	}
	return b.String()
}

var shellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"$", `\$`,
	"`", "\\`",
)

// shellEscape escapes a value for use inside double quotes in a shell script.
func shellEscape(s string) string {
	return shellEscaper.Replace(s)
}

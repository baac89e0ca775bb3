package status

import (
	"strings"
	"time"

	"mvp-orchestrator/core/models"
)

// Assignment is one attribute-path assignment in a partial update.
type Assignment struct {
	Path  string
	Value interface{}
}

// Update is a sparse set of job fields to apply as one partial update.
// Zero-valued fields are left untouched in the store.
type Update struct {
	Status        string
	Step          string
	Progress      *int
	RepoURL       string
	RepoName      string
	StagingURL    string
	ProductionURL string

	// Error, when set, appends an entry to the job's error log. The entry's
	// step is ErrorStep, falling back to Step, falling back to "unknown".
	Error     string
	ErrorStep string

	BatchJobID         string
	VercelProjectID    string
	VercelDeploymentID string

	// ForceCompletedAt stamps timestamps.completedAt regardless of status.
	// The completion handler sets this: a terminal notification marks the end
	// of the build whether it succeeded or failed.
	ForceCompletedAt bool
}

// IsZero reports whether the update carries no fields at all.
func (u Update) IsZero() bool {
	return u.Status == "" && u.Step == "" && u.Progress == nil &&
		u.RepoURL == "" && u.RepoName == "" && u.StagingURL == "" &&
		u.ProductionURL == "" && u.Error == "" &&
		u.BatchJobID == "" && u.VercelProjectID == "" && u.VercelDeploymentID == "" &&
		!u.ForceCompletedAt
}

// Assignments maps the update onto canonical attribute paths, plus the error
// entry to append, if any. An empty update yields no assignments; a non-empty
// one always includes timestamps.updatedAt.
func (u Update) Assignments(now time.Time) ([]Assignment, *models.JobError) {
	if u.IsZero() {
		return nil, nil
	}

	ts := now.UTC().Format(time.RFC3339)
	assigns := []Assignment{{Path: "timestamps.updatedAt", Value: ts}}

	if u.Status != "" {
		assigns = append(assigns, Assignment{Path: "status", Value: u.Status})
		if strings.EqualFold(u.Status, string(models.JobStatusInProgress)) {
			assigns = append(assigns, Assignment{Path: "timestamps.startedAt", Value: ts})
		}
	}
	if u.ForceCompletedAt || strings.EqualFold(u.Status, string(models.JobStatusCompleted)) {
		assigns = append(assigns, Assignment{Path: "timestamps.completedAt", Value: ts})
	}
	if u.Step != "" {
		assigns = append(assigns, Assignment{Path: "currentStep", Value: u.Step})
	}
	if u.Progress != nil {
		assigns = append(assigns, Assignment{Path: "progress", Value: *u.Progress})
	}
	if u.RepoURL != "" {
		assigns = append(assigns, Assignment{Path: "urls.codeRepository", Value: u.RepoURL})
	}
	if u.StagingURL != "" {
		assigns = append(assigns, Assignment{Path: "urls.staging", Value: u.StagingURL})
	}
	if u.ProductionURL != "" {
		assigns = append(assigns, Assignment{Path: "urls.production", Value: u.ProductionURL})
	}
	if u.RepoName != "" {
		assigns = append(assigns, Assignment{Path: "resources.githubRepo.name", Value: u.RepoName})
	}
	if u.BatchJobID != "" {
		assigns = append(assigns, Assignment{Path: "resources.batchJobId", Value: u.BatchJobID})
	}
	if u.VercelProjectID != "" {
		assigns = append(assigns, Assignment{Path: "resources.vercel.projectId", Value: u.VercelProjectID})
	}
	if u.VercelDeploymentID != "" {
		assigns = append(assigns, Assignment{Path: "resources.vercel.deploymentId", Value: u.VercelDeploymentID})
	}

	var entry *models.JobError
	if u.Error != "" {
		step := u.ErrorStep
		if step == "" {
			step = u.Step
		}
		if step == "" {
			step = "unknown"
		}
		entry = &models.JobError{Timestamp: ts, Message: u.Error, Step: step}
	}

	return assigns, entry
}

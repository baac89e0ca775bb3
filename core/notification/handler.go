package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mvp-orchestrator/core/models"
	"mvp-orchestrator/core/status"
	"mvp-orchestrator/logging"

	"github.com/aws/aws-lambda-go/events"
)

// statusTTL is how long a denormalized status record survives before the
// table's reaper removes it.
const statusTTL = 30 * 24 * time.Hour

// JobUpdater applies partial updates to the primary job record
type JobUpdater interface {
	ApplyUpdate(ctx context.Context, jobID string, upd status.Update) ([]string, error)
}

// StatusWriter replaces the denormalized status record
type StatusWriter interface {
	Put(ctx context.Context, rec *models.StatusRecord) error
}

// Response is the result object returned to the invoking runtime
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler processes batches of completion notifications. Each record updates
// the primary job record and upserts the status projection; the two writes
// are not jointly atomic. A failure on any record fails the whole batch.
type Handler struct {
	jobs     JobUpdater
	statuses StatusWriter
	now      func() time.Time
}

// NewHandler creates a new completion notification handler
func NewHandler(jobs JobUpdater, statuses StatusWriter) *Handler {
	return &Handler{jobs: jobs, statuses: statuses, now: time.Now}
}

// Handle processes one SNS event batch
func (h *Handler) Handle(ctx context.Context, event events.SNSEvent) (Response, error) {
	for _, rec := range event.Records {
		if rec.EventSource != "aws:sns" {
			logging.Debug("skipping record from unexpected source", "source", rec.EventSource)
			continue
		}

		var msg models.CompletionMessage
		if err := json.Unmarshal([]byte(rec.SNS.Message), &msg); err != nil {
			logging.Error(err, "malformed completion message", "messageId", rec.SNS.MessageID)
			return Response{StatusCode: 500, Body: fmt.Sprintf("Error: %v", err)}, nil
		}

		if msg.JobID == "" {
			logging.Info("no jobId in completion message, skipping", "messageId", rec.SNS.MessageID)
			continue
		}

		if err := h.process(ctx, msg); err != nil {
			logging.Error(err, "processing completion failed", "jobId", msg.JobID)
			return Response{StatusCode: 500, Body: fmt.Sprintf("Error: %v", err)}, nil
		}
		logging.Info("job status updated", "jobId", msg.JobID, "status", msg.Status)
	}

	return Response{StatusCode: 200, Body: "Status updated successfully"}, nil
}

func (h *Handler) process(ctx context.Context, msg models.CompletionMessage) error {
	if _, err := h.jobs.ApplyUpdate(ctx, msg.JobID, buildUpdate(msg)); err != nil {
		return err
	}
	return h.statuses.Put(ctx, h.statusRecord(msg))
}

// buildUpdate maps a completion message onto a job update. Status and the
// completion timestamp are always set; everything else only when present.
func buildUpdate(msg models.CompletionMessage) status.Update {
	st := msg.Status
	if st == "" {
		st = "completed"
	}

	upd := status.Update{
		Status:             st,
		RepoURL:            msg.RepoURL,
		StagingURL:         msg.StagingURL,
		ProductionURL:      msg.ProductionURL,
		BatchJobID:         msg.BatchJobID,
		VercelProjectID:    msg.VercelProjectID,
		VercelDeploymentID: msg.VercelDeploymentID,
		ForceCompletedAt:   true,
	}

	if strings.EqualFold(st, string(models.JobStatusCompleted)) {
		progress := 100
		upd.Progress = &progress
		upd.Step = string(models.JobStatusCompleted)
	}

	if strings.EqualFold(st, string(models.JobStatusFailed)) && msg.Error != "" {
		upd.Error = msg.Error
		upd.ErrorStep = msg.CurrentStep
	}

	return upd
}

// statusRecord builds the read-side projection, keyed by projectId with
// jobId as the fallback key.
func (h *Handler) statusRecord(msg models.CompletionMessage) *models.StatusRecord {
	projectID := msg.ProjectID
	if projectID == "" {
		projectID = msg.JobID
	}

	st := msg.Status
	if st == "" {
		st = "completed"
	}

	now := h.now().UTC()
	return &models.StatusRecord{
		ProjectID: projectID,
		JobID:     msg.JobID,
		Status:    st,
		URLs: models.StatusURLs{
			Production: msg.ProductionURL,
			Staging:    msg.StagingURL,
			Repository: msg.RepoURL,
		},
		UserID:       msg.UserID,
		BusinessName: msg.BusinessName,
		UpdatedAt:    now.Format(time.RFC3339),
		TTL:          now.Add(statusTTL).Unix(),
	}
}

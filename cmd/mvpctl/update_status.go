package main

import (
	"mvp-orchestrator/config"
	"mvp-orchestrator/core/repository"
	"mvp-orchestrator/core/status"
	"mvp-orchestrator/logging"

	"github.com/spf13/cobra"
)

var (
	updateJobID    string
	updateFlags    status.Update
	updateProgress int
)

var updateStatusCmd = &cobra.Command{
	Use:   "update-status",
	Short: "Apply a partial status update to a job record",
	RunE:  runUpdateStatus,
}

func init() {
	rootCmd.AddCommand(updateStatusCmd)

	f := updateStatusCmd.Flags()
	f.StringVar(&updateJobID, "job-id", "", "job identifier")
	f.StringVar(&updateFlags.Status, "status", "", "lifecycle status (e.g. IN_PROGRESS, COMPLETED, FAILED)")
	f.StringVar(&updateFlags.Step, "step", "", "current pipeline step label")
	f.IntVar(&updateProgress, "progress", 0, "progress percentage (0-100)")
	f.StringVar(&updateFlags.RepoURL, "repo-url", "", "code repository URL")
	f.StringVar(&updateFlags.RepoName, "repo-name", "", "code repository name")
	f.StringVar(&updateFlags.StagingURL, "staging-url", "", "staging deployment URL")
	f.StringVar(&updateFlags.ProductionURL, "production-url", "", "production deployment URL")
	f.StringVar(&updateFlags.Error, "error", "", "error message to append to the job's error log")
	updateStatusCmd.MarkFlagRequired("job-id")
}

func runUpdateStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	if cmd.Flags().Changed("progress") {
		updateFlags.Progress = &updateProgress
	}

	if updateFlags.IsZero() {
		logging.Info("no status fields supplied, nothing to update", "jobId", updateJobID)
		return nil
	}

	db, err := repository.NewDB(ctx, cfg.AWSRegion)
	if err != nil {
		logging.Error(err, "connecting to store failed")
		return err
	}

	jobs := repository.NewJobRepository(db.Client, cfg.JobsTable)
	paths, err := jobs.ApplyUpdate(ctx, updateJobID, updateFlags)
	if err != nil {
		logging.Error(err, "updating job status failed", "jobId", updateJobID)
		return err
	}

	logging.Info("job status updated", "jobId", updateJobID, "fields", paths)
	return nil
}

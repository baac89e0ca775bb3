package main

import (
	"mvp-orchestrator/config"
	"mvp-orchestrator/core/render"
	"mvp-orchestrator/core/repository"
	"mvp-orchestrator/logging"

	"github.com/spf13/cobra"
)

var (
	fetchJobID     string
	fetchOutputDir string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a job record and render the build-agent input files",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchJobID, "job-id", "", "job identifier")
	fetchCmd.Flags().StringVar(&fetchOutputDir, "output-dir", "", "directory for rendered artifacts")
	fetchCmd.MarkFlagRequired("job-id")
	fetchCmd.MarkFlagRequired("output-dir")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	db, err := repository.NewDB(ctx, cfg.AWSRegion)
	if err != nil {
		logging.Error(err, "connecting to store failed")
		return err
	}

	jobs := repository.NewJobRepository(db.Client, cfg.JobsTable)
	job, raw, err := jobs.GetJob(ctx, fetchJobID)
	if err != nil {
		logging.Error(err, "fetching job data failed", "jobId", fetchJobID)
		return err
	}

	defaults := render.BuiltinDefaults()
	if cfg.RenderDefaultsFile != "" {
		defaults, err = render.LoadDefaults(cfg.RenderDefaultsFile)
		if err != nil {
			logging.Error(err, "loading render defaults failed", "path", cfg.RenderDefaultsFile)
			return err
		}
	}

	if err := render.NewRenderer(defaults).Render(job, raw, fetchOutputDir); err != nil {
		logging.Error(err, "rendering job data failed", "jobId", fetchJobID)
		return err
	}

	logging.Info("job data fetched", "jobId", fetchJobID, "outputDir", fetchOutputDir)
	return nil
}

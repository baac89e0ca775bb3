package main

import (
	"context"
	"os"

	"mvp-orchestrator/config"
	"mvp-orchestrator/core/notification"
	"mvp-orchestrator/core/repository"
	"mvp-orchestrator/logging"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg := config.Load()

	db, err := repository.NewDB(context.Background(), cfg.AWSRegion)
	if err != nil {
		logging.Error(err, "connecting to store failed")
		os.Exit(1)
	}

	handler := notification.NewHandler(
		repository.NewJobRepository(db.Client, cfg.JobsTable),
		repository.NewStatusRepository(db.Client, cfg.StatusTable),
	)

	lambda.Start(handler.Handle)
}

package models

// CompletionMessage is the JSON payload delivered by the notification topic
// when a build reaches a terminal state. All fields except jobId are
// optional.
type CompletionMessage struct {
	JobID              string `json:"jobId"`
	Status             string `json:"status"`
	RepoURL            string `json:"repoUrl"`
	ProductionURL      string `json:"productionUrl"`
	StagingURL         string `json:"stagingUrl"`
	BatchJobID         string `json:"batchJobId"`
	VercelProjectID    string `json:"vercelProjectId"`
	VercelDeploymentID string `json:"vercelDeploymentId"`
	ProjectID          string `json:"projectId"`
	UserID             string `json:"userId"`
	BusinessName       string `json:"businessName"`
	Error              string `json:"error"`
	CurrentStep        string `json:"currentStep"`
}

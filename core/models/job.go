package models

// JobStatus represents the lifecycle state of an MVP build job. The set is
// open: upstream components may write other values and readers must pass
// them through untouched.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// JobRecord is the primary per-job entity in the jobs table, keyed by jobId.
//
// The canonical layout nests detail under product/user/specifications/
// timestamps/urls/resources. Records written by older pipelines are flat
// (top-level businessName, userId, ...); those fields are kept here so the
// renderer can fall back to derived defaults. Writes always use the nested
// layout.
type JobRecord struct {
	JobID       string    `dynamodbav:"jobId" json:"jobId"`
	Status      JobStatus `dynamodbav:"status" json:"status"`
	CurrentStep string    `dynamodbav:"currentStep" json:"currentStep,omitempty"`
	Progress    int       `dynamodbav:"progress" json:"progress"`

	Product        Product        `dynamodbav:"product" json:"product"`
	User           User           `dynamodbav:"user" json:"user"`
	Specifications Specifications `dynamodbav:"specifications" json:"specifications"`
	Development    Development    `dynamodbav:"development" json:"development"`

	Timestamps Timestamps   `dynamodbav:"timestamps" json:"timestamps"`
	URLs       JobURLs      `dynamodbav:"urls" json:"urls"`
	Resources  JobResources `dynamodbav:"resources" json:"resources"`

	// Errors is append-only; existing entries are never rewritten.
	Errors []JobError `dynamodbav:"errors" json:"errors,omitempty"`

	// Flat-shape fallbacks
	BusinessName string `dynamodbav:"businessName" json:"businessName,omitempty"`
	Description  string `dynamodbav:"description" json:"description,omitempty"`
	UserID       string `dynamodbav:"userId" json:"userId,omitempty"`
	ProductID    string `dynamodbav:"productId" json:"productId,omitempty"`
}

// Product holds the business-facing description of the MVP being built
type Product struct {
	ID            string `dynamodbav:"id" json:"id"`
	Name          string `dynamodbav:"name" json:"name"`
	Tagline       string `dynamodbav:"tagline" json:"tagline,omitempty"`
	Description   string `dynamodbav:"description" json:"description,omitempty"`
	SanitizedName string `dynamodbav:"sanitizedName" json:"sanitizedName,omitempty"`
}

// User identifies the job owner
type User struct {
	ID    string `dynamodbav:"id" json:"id"`
	Email string `dynamodbav:"email" json:"email,omitempty"`
}

// Specifications carries the product requirements handed to the build agent
type Specifications struct {
	TargetAudience        string                 `dynamodbav:"targetAudience" json:"targetAudience,omitempty"`
	KeyFeatures           []string               `dynamodbav:"keyFeatures" json:"keyFeatures,omitempty"`
	TechnicalRequirements map[string]interface{} `dynamodbav:"technicalRequirements" json:"technicalRequirements,omitempty"`
	DesignPreferences     map[string]interface{} `dynamodbav:"designPreferences" json:"designPreferences,omitempty"`
	MVPSpecs              string                 `dynamodbav:"mvpSpecs" json:"mvpSpecs,omitempty"`
}

// Development holds free-text instructions for the build agent
type Development struct {
	DevelopmentPrompts string `dynamodbav:"developmentPrompts" json:"developmentPrompts,omitempty"`
}

// Timestamps are ISO-8601 strings in UTC
type Timestamps struct {
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt,omitempty"`
	StartedAt   string `dynamodbav:"startedAt" json:"startedAt,omitempty"`
	CompletedAt string `dynamodbav:"completedAt" json:"completedAt,omitempty"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt,omitempty"`
}

// JobURLs are the externally visible artifacts of a finished build
type JobURLs struct {
	CodeRepository string `dynamodbav:"codeRepository" json:"codeRepository,omitempty"`
	Staging        string `dynamodbav:"staging" json:"staging,omitempty"`
	Production     string `dynamodbav:"production" json:"production,omitempty"`
}

// JobResources holds provider-specific identifiers created during the build
type JobResources struct {
	BatchJobID string         `dynamodbav:"batchJobId" json:"batchJobId,omitempty"`
	GithubRepo GithubRepo     `dynamodbav:"githubRepo" json:"githubRepo"`
	Vercel     VercelResource `dynamodbav:"vercel" json:"vercel"`
}

// GithubRepo identifies the generated code repository
type GithubRepo struct {
	Name string `dynamodbav:"name" json:"name,omitempty"`
	URL  string `dynamodbav:"url" json:"url,omitempty"`
}

// VercelResource identifies the deployment on the hosting platform
type VercelResource struct {
	ProjectID    string `dynamodbav:"projectId" json:"projectId,omitempty"`
	DeploymentID string `dynamodbav:"deploymentId" json:"deploymentId,omitempty"`
}

// JobError is one entry in a job's append-only error log
type JobError struct {
	Timestamp string `dynamodbav:"timestamp" json:"timestamp"`
	Message   string `dynamodbav:"message" json:"message"`
	Step      string `dynamodbav:"step" json:"step"`
}

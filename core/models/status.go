package models

// StatusRecord is the denormalized read-side projection in the status table,
// keyed by projectId (jobId when no projectId is known). It is replaced
// wholesale on every completion notification and expires via the table's TTL
// attribute.
type StatusRecord struct {
	ProjectID    string     `dynamodbav:"projectId" json:"projectId"`
	JobID        string     `dynamodbav:"jobId" json:"jobId"`
	Status       string     `dynamodbav:"status" json:"status"`
	URLs         StatusURLs `dynamodbav:"urls" json:"urls"`
	UserID       string     `dynamodbav:"userId,omitempty" json:"userId,omitempty"`
	BusinessName string     `dynamodbav:"businessName,omitempty" json:"businessName,omitempty"`
	UpdatedAt    string     `dynamodbav:"updatedAt" json:"updatedAt"`

	// TTL is epoch seconds; the table's reaper deletes the item after it.
	TTL int64 `dynamodbav:"ttl" json:"ttl"`
}

// StatusURLs mirrors the job URLs for quick reads
type StatusURLs struct {
	Production string `dynamodbav:"production" json:"production,omitempty"`
	Staging    string `dynamodbav:"staging" json:"staging,omitempty"`
	Repository string `dynamodbav:"repository" json:"repository,omitempty"`
}

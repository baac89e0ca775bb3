package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mvp-orchestrator/core/models"
	"mvp-orchestrator/core/status"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrJobNotFound is returned when no record exists for a job id
var ErrJobNotFound = errors.New("job not found")

// JobRepository handles jobs-table operations
type JobRepository struct {
	db    DynamoAPI
	table string
	now   func() time.Time
}

// NewJobRepository creates a new job repository
func NewJobRepository(db DynamoAPI, table string) *JobRepository {
	return &JobRepository{db: db, table: table, now: time.Now}
}

// GetJob retrieves a job record by id. It returns both the decoded record and
// the raw item as generic values (DynamoDB numbers decoded to plain float64)
// so callers can serialize the record without losing fields the struct does
// not model.
func (r *JobRepository) GetJob(ctx context.Context, jobID string) (*models.JobRecord, map[string]interface{}, error) {
	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       jobKey(jobID),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get job %s: %w", jobID, err)
	}
	if len(out.Item) == 0 {
		return nil, nil, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
	}

	var job models.JobRecord
	if err := attributevalue.UnmarshalMap(out.Item, &job); err != nil {
		return nil, nil, fmt.Errorf("decode job %s: %w", jobID, err)
	}

	raw := map[string]interface{}{}
	if err := attributevalue.UnmarshalMap(out.Item, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode job %s: %w", jobID, err)
	}

	return &job, raw, nil
}

// ApplyUpdate applies a sparse status update as one atomic partial update and
// returns the attribute paths written. An empty update performs no store call.
func (r *JobRepository) ApplyUpdate(ctx context.Context, jobID string, upd status.Update) ([]string, error) {
	assigns, errEntry := upd.Assignments(r.now())
	if len(assigns) == 0 && errEntry == nil {
		return nil, nil
	}

	builder := expression.UpdateBuilder{}
	paths := make([]string, 0, len(assigns)+1)
	for _, a := range assigns {
		builder = builder.Set(expression.Name(a.Path), expression.Value(a.Value))
		paths = append(paths, a.Path)
	}
	if errEntry != nil {
		// Append, initializing the list on first error.
		builder = builder.Set(
			expression.Name("errors"),
			expression.ListAppend(
				expression.IfNotExists(expression.Name("errors"), expression.Value([]models.JobError{})),
				expression.Value([]models.JobError{*errEntry}),
			),
		)
		paths = append(paths, "errors")
	}

	expr, err := expression.NewBuilder().WithUpdate(builder).Build()
	if err != nil {
		return nil, fmt.Errorf("build update for job %s: %w", jobID, err)
	}

	_, err = r.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       jobKey(jobID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("update job %s: %w", jobID, err)
	}

	return paths, nil
}

func jobKey(jobID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"jobId": &types.AttributeValueMemberS{Value: jobID},
	}
}

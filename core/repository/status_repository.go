package repository

import (
	"context"
	"errors"
	"fmt"

	"mvp-orchestrator/core/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrStatusNotFound is returned when no status record exists for a project id
var ErrStatusNotFound = errors.New("status record not found")

// StatusRepository handles status-table operations
type StatusRepository struct {
	db    DynamoAPI
	table string
}

// NewStatusRepository creates a new status repository
func NewStatusRepository(db DynamoAPI, table string) *StatusRepository {
	return &StatusRepository{db: db, table: table}
}

// Put replaces the status record wholesale
func (r *StatusRepository) Put(ctx context.Context, rec *models.StatusRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("encode status record %s: %w", rec.ProjectID, err)
	}

	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put status record %s: %w", rec.ProjectID, err)
	}
	return nil
}

// Get retrieves the status record for a project id
func (r *StatusRepository) Get(ctx context.Context, projectID string) (*models.StatusRecord, error) {
	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"projectId": &types.AttributeValueMemberS{Value: projectID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get status record %s: %w", projectID, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("status record %s: %w", projectID, ErrStatusNotFound)
	}

	var rec models.StatusRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("decode status record %s: %w", projectID, err)
	}
	return &rec, nil
}

package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mvp-orchestrator/core/models"
	"mvp-orchestrator/core/status"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo captures calls instead of talking to the store.
type fakeDynamo struct {
	getOut  *dynamodb.GetItemOutput
	getErr  error
	updErr  error
	putErr  error
	gets    []*dynamodb.GetItemInput
	updates []*dynamodb.UpdateItemInput
	puts    []*dynamodb.PutItemInput
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.gets = append(f.gets, params)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, params)
	if f.updErr != nil {
		return nil, f.updErr
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, params)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func newTestJobRepo(db *fakeDynamo) *JobRepository {
	r := NewJobRepository(db, "mvp-jobs")
	r.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return r
}

// attributeNames flattens the expression name placeholders to their values.
func attributeNames(in *dynamodb.UpdateItemInput) map[string]bool {
	names := map[string]bool{}
	for _, v := range in.ExpressionAttributeNames {
		names[v] = true
	}
	return names
}

func statusRecordFixture() *models.StatusRecord {
	return &models.StatusRecord{
		ProjectID: "proj-1",
		JobID:     "job-123",
		Status:    "completed",
		URLs:      models.StatusURLs{Production: "https://x.example"},
		UpdatedAt: "2025-03-14T09:26:53Z",
		TTL:       1744622813,
	}
}

func TestGetJobNotFound(t *testing.T) {
	db := &fakeDynamo{}
	repo := newTestJobRepo(db)

	_, _, err := repo.GetJob(context.Background(), "missing-job")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("GetJob() error = %v, want ErrJobNotFound", err)
	}
	if len(db.gets) != 1 {
		t.Errorf("GetItem calls = %d, want 1", len(db.gets))
	}
}

func TestGetJobDecodesRecordAndRaw(t *testing.T) {
	db := &fakeDynamo{
		getOut: &dynamodb.GetItemOutput{
			Item: map[string]types.AttributeValue{
				"jobId":        &types.AttributeValueMemberS{Value: "job-123"},
				"businessName": &types.AttributeValueMemberS{Value: "Acme"},
				"progress":     &types.AttributeValueMemberN{Value: "37"},
				"extraField":   &types.AttributeValueMemberS{Value: "kept"},
			},
		},
	}
	repo := newTestJobRepo(db)

	job, raw, err := repo.GetJob(context.Background(), "job-123")
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if job.JobID != "job-123" || job.BusinessName != "Acme" || job.Progress != 37 {
		t.Errorf("GetJob() record = %+v", job)
	}
	// Fields the struct does not model survive in the raw item.
	if raw["extraField"] != "kept" {
		t.Errorf("raw[extraField] = %v, want kept", raw["extraField"])
	}
	if n, ok := raw["progress"].(float64); !ok || n != 37 {
		t.Errorf("raw[progress] = %v, want plain number 37", raw["progress"])
	}
}

func TestApplyUpdateEmptyMakesNoStoreCall(t *testing.T) {
	db := &fakeDynamo{}
	repo := newTestJobRepo(db)

	paths, err := repo.ApplyUpdate(context.Background(), "job-123", status.Update{})
	if err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}
	if paths != nil {
		t.Errorf("ApplyUpdate() paths = %v, want nil", paths)
	}
	if len(db.updates) != 0 {
		t.Errorf("UpdateItem calls = %d, want 0", len(db.updates))
	}
}

func TestApplyUpdateSingleCall(t *testing.T) {
	db := &fakeDynamo{}
	repo := newTestJobRepo(db)

	progress := 50
	paths, err := repo.ApplyUpdate(context.Background(), "job-123", status.Update{
		Status:        "IN_PROGRESS",
		Step:          "deploying",
		Progress:      &progress,
		ProductionURL: "https://x.example",
	})
	if err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}
	if len(db.updates) != 1 {
		t.Fatalf("UpdateItem calls = %d, want 1", len(db.updates))
	}

	wantPaths := []string{
		"timestamps.updatedAt",
		"status",
		"timestamps.startedAt",
		"currentStep",
		"progress",
		"urls.production",
	}
	if len(paths) != len(wantPaths) {
		t.Fatalf("ApplyUpdate() paths = %v, want %v", paths, wantPaths)
	}
	for i, p := range wantPaths {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
	}

	in := db.updates[0]
	if key := in.Key["jobId"].(*types.AttributeValueMemberS).Value; key != "job-123" {
		t.Errorf("update key = %q, want job-123", key)
	}
	names := attributeNames(in)
	for _, want := range []string{"timestamps", "updatedAt", "status", "startedAt", "currentStep", "progress", "urls", "production"} {
		if !names[want] {
			t.Errorf("expression attribute names missing %q (have %v)", want, names)
		}
	}
}

func TestApplyUpdateAppendsError(t *testing.T) {
	db := &fakeDynamo{}
	repo := newTestJobRepo(db)

	paths, err := repo.ApplyUpdate(context.Background(), "job-123", status.Update{
		Status: "FAILED",
		Error:  "build failed",
	})
	if err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}
	if paths[len(paths)-1] != "errors" {
		t.Errorf("ApplyUpdate() paths = %v, want errors last", paths)
	}

	expr := *db.updates[0].UpdateExpression
	if !strings.Contains(expr, "list_append") || !strings.Contains(expr, "if_not_exists") {
		t.Errorf("update expression = %q, want list_append over if_not_exists", expr)
	}
}

func TestApplyUpdateSurfacesStoreError(t *testing.T) {
	storeErr := errors.New("throughput exceeded")
	db := &fakeDynamo{updErr: storeErr}
	repo := newTestJobRepo(db)

	_, err := repo.ApplyUpdate(context.Background(), "job-123", status.Update{Status: "COMPLETED"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("ApplyUpdate() error = %v, want wrapped store error", err)
	}
}

func TestStatusRepositoryPutAndGet(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewStatusRepository(db, "mvp-status")

	rec := statusRecordFixture()
	if err := repo.Put(context.Background(), rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if len(db.puts) != 1 {
		t.Fatalf("PutItem calls = %d, want 1", len(db.puts))
	}

	item := db.puts[0].Item
	if got := item["projectId"].(*types.AttributeValueMemberS).Value; got != "proj-1" {
		t.Errorf("item projectId = %q, want proj-1", got)
	}
	if _, ok := item["ttl"].(*types.AttributeValueMemberN); !ok {
		t.Error("item ttl is not numeric")
	}

	db.getOut = &dynamodb.GetItemOutput{Item: item}
	got, err := repo.Get(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.JobID != rec.JobID || got.Status != rec.Status || got.TTL != rec.TTL {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}
}

func TestStatusRepositoryGetNotFound(t *testing.T) {
	repo := NewStatusRepository(&fakeDynamo{}, "mvp-status")

	_, err := repo.Get(context.Background(), "proj-missing")
	if !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("Get() error = %v, want ErrStatusNotFound", err)
	}
}

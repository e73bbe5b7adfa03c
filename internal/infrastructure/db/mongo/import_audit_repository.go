package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

const importRunsCollection = "import_runs"

// importRunDoc is the stored shape of an import run.
type importRunDoc struct {
	ID            string    `bson:"_id"`
	Filename      string    `bson:"filename"`
	ActorID       uint      `bson:"actor_id"`
	ActorUsername string    `bson:"actor_username"`
	SuccessCount  int       `bson:"success_count"`
	ErrorCount    int       `bson:"error_count"`
	SkippedCount  int       `bson:"skipped_count"`
	Errors        []string  `bson:"errors"`
	FileError     string    `bson:"file_error,omitempty"`
	StartedAt     time.Time `bson:"started_at"`
	FinishedAt    time.Time `bson:"finished_at"`
}

// ImportAuditRepository implements ports.ImportAuditRepository using MongoDB.
type ImportAuditRepository struct {
	coll *mongo.Collection
}

func NewImportAuditRepository(db *mongo.Database) *ImportAuditRepository {
	return &ImportAuditRepository{coll: db.Collection(importRunsCollection)}
}

var _ ports.ImportAuditRepository = (*ImportAuditRepository)(nil)

// EnsureIndexes creates the index backing Recent.
func (r *ImportAuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "started_at", Value: -1}},
		Options: options.Index().SetName("started_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("import_runs index: %w", err)
	}
	return nil
}

func (r *ImportAuditRepository) Record(ctx context.Context, run *domain.ImportRun) error {
	if _, err := r.coll.InsertOne(ctx, newImportRunDoc(run)); err != nil {
		return fmt.Errorf("record import run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (r *ImportAuditRepository) Recent(ctx context.Context, limit int) ([]*domain.ImportRun, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find import runs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []importRunDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode import runs: %w", err)
	}

	runs := make([]*domain.ImportRun, 0, len(docs))
	for i := range docs {
		runs = append(runs, docs[i].toDomain())
	}
	return runs, nil
}

func newImportRunDoc(run *domain.ImportRun) importRunDoc {
	errs := run.Errors
	if errs == nil {
		errs = []string{}
	}
	return importRunDoc{
		ID:            run.ID,
		Filename:      run.Filename,
		ActorID:       run.ActorID,
		ActorUsername: run.ActorUsername,
		SuccessCount:  run.SuccessCount,
		ErrorCount:    run.ErrorCount,
		SkippedCount:  run.SkippedCount,
		Errors:        errs,
		FileError:     run.FileError,
		StartedAt:     run.StartedAt.UTC(),
		FinishedAt:    run.FinishedAt.UTC(),
	}
}

func (d *importRunDoc) toDomain() *domain.ImportRun {
	return &domain.ImportRun{
		ID:            d.ID,
		Filename:      d.Filename,
		ActorID:       d.ActorID,
		ActorUsername: d.ActorUsername,
		SuccessCount:  d.SuccessCount,
		ErrorCount:    d.ErrorCount,
		SkippedCount:  d.SkippedCount,
		Errors:        d.Errors,
		FileError:     d.FileError,
		StartedAt:     d.StartedAt,
		FinishedAt:    d.FinishedAt,
	}
}

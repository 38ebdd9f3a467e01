package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

const logsCollection = "service_logs"

// LogRepository implements ports.LogRepository using MongoDB.
type LogRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewLogRepository(db *mongo.Database) *LogRepository {
	return &LogRepository{db: db, coll: db.Collection(logsCollection)}
}

func (r *LogRepository) Create(ctx context.Context, e *domain.LogEntry) (*domain.LogEntry, error) {
	id, err := NextSequence(ctx, r.db, "service_logs")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e.ID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *LogRepository) List(ctx context.Context, service, level string, limit int64) ([]domain.LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if service != "" {
		filter["service"] = service
	}
	if level != "" {
		filter["level"] = level
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []domain.LogEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats counts stored entries by level and by origin service.
func (r *LogRepository) Stats(ctx context.Context) (*domain.LogStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "level", Value: "$level"},
				{Key: "service", Value: "$service"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Key struct {
			Level   string `bson:"level"`
			Service string `bson:"service"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.LogStats{
		ByLevel:   map[string]int64{},
		ByService: map[string]int64{},
	}
	for _, row := range rows {
		stats.ByLevel[row.Key.Level] += row.Count
		stats.ByService[row.Key.Service] += row.Count
	}
	return stats, nil
}

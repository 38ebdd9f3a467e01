package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

const eventsCollection = "analytics_events"

// AnalyticsRepository implements ports.EventRepository using MongoDB.
type AnalyticsRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{db: db, coll: db.Collection(eventsCollection)}
}

func (r *AnalyticsRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	id, err := NextSequence(ctx, r.db, "analytics_events")
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

func (r *AnalyticsRepository) List(ctx context.Context, eventType string, limit int64) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if eventType != "" {
		filter["event_type"] = eventType
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

	events := []domain.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Stats aggregates counts by type plus view and unique-user totals in a
// single pipeline pass.
func (r *AnalyticsRepository) Stats(ctx context.Context) (*domain.EventStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$event_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "users", Value: bson.D{{Key: "$addToSet", Value: "$user_id"}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		EventType string  `bson:"_id"`
		Count     int64   `bson:"count"`
		Users     []int64 `bson:"users"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.EventStats{EventsByType: map[string]int64{}}
	unique := map[int64]struct{}{}
	for _, row := range rows {
		stats.EventsByType[row.EventType] = row.Count
		stats.TotalEvents += row.Count
		if row.EventType == domain.EventPropertyView {
			stats.TotalViews = row.Count
		}
		for _, u := range row.Users {
			if u != 0 {
				unique[u] = struct{}{}
			}
		}
	}
	stats.UniqueUsers = int64(len(unique))
	return stats, nil
}

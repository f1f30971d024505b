package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

const (
	accessEventsCollection = "access_events"
	accessEventRetention   = 90 * 24 * time.Hour
)

// AccessEventRepository implements ports.AccessEventRepository using MongoDB.
type AccessEventRepository struct {
	coll *mongo.Collection
}

func NewAccessEventRepository(db *mongo.Database) *AccessEventRepository {
	return &AccessEventRepository{coll: db.Collection(accessEventsCollection)}
}

var _ ports.AccessEventRepository = (*AccessEventRepository)(nil)

type mongoAccessEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Kind         string             `bson:"kind"`
	Path         string             `bson:"path,omitempty"`
	Subject      string             `bson:"subject,omitempty"`
	Role         string             `bson:"role,omitempty"`
	RequiredRole string             `bson:"required_role,omitempty"`
	Reason       string             `bson:"reason,omitempty"`
	RemoteIP     string             `bson:"remote_ip,omitempty"`
	RequestID    string             `bson:"request_id,omitempty"`
	OccurredAt   time.Time          `bson:"occurred_at"`
}

// EnsureIndexes creates the listing index and a TTL index that ages out
// old audit entries.
func (r *AccessEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "occurred_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(accessEventRetention.Seconds())),
		},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "reason", Value: 1}, {Key: "occurred_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AccessEventRepository) Insert(ctx context.Context, event *domain.AccessEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccessEvent{
		Kind:         string(event.Kind),
		Path:         event.Path,
		Subject:      event.Subject,
		Role:         string(event.Role),
		RequiredRole: string(event.RequiredRole),
		Reason:       event.Reason,
		RemoteIP:     event.RemoteIP,
		RequestID:    event.RequestID,
		OccurredAt:   event.OccurredAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert access event: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

// ListRecent returns events newest first.
func (r *AccessEventRepository) ListRecent(ctx context.Context, filter ports.AccessEventFilter) ([]*domain.AccessEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := accessEventQuery(filter)
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find access events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAccessEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode access events: %w", err)
	}

	events := make([]*domain.AccessEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &domain.AccessEvent{
			ID:           d.ID.Hex(),
			Kind:         domain.AccessEventKind(d.Kind),
			Path:         d.Path,
			Subject:      d.Subject,
			Role:         domain.Role(d.Role),
			RequiredRole: domain.Role(d.RequiredRole),
			Reason:       d.Reason,
			RemoteIP:     d.RemoteIP,
			RequestID:    d.RequestID,
			OccurredAt:   d.OccurredAt,
		})
	}
	return events, nil
}

func accessEventQuery(filter ports.AccessEventFilter) bson.M {
	query := bson.M{}
	if filter.Kind != "" {
		query["kind"] = string(filter.Kind)
	}
	if filter.Reason != "" {
		query["reason"] = filter.Reason
	}
	return query
}

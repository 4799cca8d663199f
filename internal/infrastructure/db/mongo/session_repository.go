package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

const sessionCollection = "sessions"

// SessionRepository stores one document per session. A TTL index on
// expires_at lets the server reap expired sessions; Load also filters them
// because the TTL monitor runs only periodically.
type SessionRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(sessionCollection), now: time.Now}
}

type sessionDocument struct {
	ID          string    `bson:"_id"`
	AccessToken string    `bson:"accessToken"`
	User        string    `bson:"user"`
	ExpiresAt   time.Time `bson:"expires_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (r *SessionRepository) Load(ctx context.Context, id string) (*ports.SessionRecord, error) {
	filter := bson.M{"_id": id, "expires_at": bson.M{"$gt": r.now()}}

	var doc sessionDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &ports.SessionRecord{
		AccessToken: doc.AccessToken,
		User:        doc.User,
		ExpiresAt:   doc.ExpiresAt,
	}, nil
}

func (r *SessionRepository) Save(ctx context.Context, id string, rec ports.SessionRecord) error {
	doc := sessionDocument{
		ID:          id,
		AccessToken: rec.AccessToken,
		User:        rec.User,
		ExpiresAt:   rec.ExpiresAt.UTC(),
		UpdatedAt:   r.now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the TTL index on the sessions collection.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	_, err := r.col.Indexes().CreateOne(ctx, index)
	return err
}

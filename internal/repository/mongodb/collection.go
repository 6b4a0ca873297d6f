package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/msomdec/folio-cms/internal/domain"
)

// mapping converts between a domain entity and its stored document.
type mapping[T any, D any] struct {
	toDoc   func(e *T) D
	fromDoc func(d D) T
	id      func(e *T) string
	// stamp sets timestamps before a write; creating is false on updates.
	stamp func(e *T, now time.Time, creating bool)
	// sort orders List results.
	sort bson.D
}

// collection implements domain.Repository[T] for one Mongo collection.
type collection[T any, D any] struct {
	coll *mongo.Collection
	kind string
	m    mapping[T, D]
}

func newCollection[T any, D any](coll *mongo.Collection, kind string, m mapping[T, D]) *collection[T, D] {
	return &collection[T, D]{coll: coll, kind: kind, m: m}
}

func (c *collection[T, D]) Create(ctx context.Context, entity *T) error {
	if c.m.stamp != nil {
		c.m.stamp(entity, time.Now().UTC(), true)
	}
	if _, err := c.coll.InsertOne(ctx, c.m.toDoc(entity)); err != nil {
		return c.writeError(err, "insert")
	}
	return nil
}

func (c *collection[T, D]) GetByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, bson.D{{Key: "id", Value: id}})
}

func (c *collection[T, D]) findOne(ctx context.Context, filter bson.D) (*T, error) {
	var doc D
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.kind, err)
	}
	e := c.m.fromDoc(doc)
	return &e, nil
}

func (c *collection[T, D]) List(ctx context.Context, page domain.PageRequest) ([]T, int, error) {
	total, err := c.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("count %ss: %w", c.kind, err)
	}

	opts := options.Find().
		SetSort(c.m.sort).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	cur, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list %ss: %w", c.kind, err)
	}

	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode %ss: %w", c.kind, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, c.m.fromDoc(d))
	}
	return out, int(total), nil
}

func (c *collection[T, D]) Update(ctx context.Context, entity *T) error {
	if c.m.stamp != nil {
		c.m.stamp(entity, time.Now().UTC(), false)
	}
	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "id", Value: c.m.id(entity)}}, c.m.toDoc(entity))
	if err != nil {
		return c.writeError(err, "update")
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection[T, D]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection[T, D]) writeError(err error, op string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s with this %s already exists", domain.ErrConflict, c.kind, duplicateField(err))
	}
	return fmt.Errorf("%s %s: %w", op, c.kind, err)
}

// duplicateField extracts the field from a message such as
// "E11000 duplicate key error collection: folio.users index: email_1 dup key".
func duplicateField(err error) string {
	msg := err.Error()
	i := strings.Index(msg, "index: ")
	if i < 0 {
		return "value"
	}
	name := msg[i+len("index: "):]
	if end := strings.IndexByte(name, ' '); end >= 0 {
		name = name[:end]
	}
	return strings.TrimSuffix(name, "_1")
}

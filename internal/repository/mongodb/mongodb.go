// Package mongodb implements the repositories on MongoDB, the document store
// the CMS was originally designed around.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection        = "users"
	blogsCollection        = "blogs"
	servicesCollection     = "services"
	testimonialsCollection = "testimonials"
)

// DB wraps a connected client and the database holding the collections.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to uri and verifies the connection with a ping.
func New(ctx context.Context, uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &DB{client: client, db: client.Database(database)}, nil
}

// Migrate creates the indexes backing the uniqueness rules. CreateMany is
// idempotent for identical index definitions.
func (db *DB) Migrate(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			unique("id"),
			unique("mobile"),
			// Sparse so that any number of users may omit an email.
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		blogsCollection: {
			unique("id"),
			unique("title"),
			{Keys: bson.D{{Key: "uploadedDate", Value: -1}}},
		},
		servicesCollection:     {unique("id"), unique("title")},
		testimonialsCollection: {unique("id")},
	}
	for name, models := range indexes {
		if _, err := db.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}

func (db *DB) Users() *UserRepository {
	return &UserRepository{newCollection(db.db.Collection(usersCollection), "user", userMapping)}
}

func (db *DB) Blogs() *BlogRepository {
	return &BlogRepository{newCollection(db.db.Collection(blogsCollection), "blog", blogMapping)}
}

func (db *DB) Services() *ServiceRepository {
	return &ServiceRepository{newCollection(db.db.Collection(servicesCollection), "service", serviceMapping)}
}

func (db *DB) Testimonials() *TestimonialRepository {
	return &TestimonialRepository{newCollection(db.db.Collection(testimonialsCollection), "testimonial", testimonialMapping)}
}

// Drop removes the whole database. Used by tests.
func (db *DB) Drop(ctx context.Context) error {
	return db.db.Drop(ctx)
}

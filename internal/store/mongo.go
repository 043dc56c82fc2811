package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoTestCaseStore struct {
	cli  *mongo.Client
	coll *mongo.Collection
}

// NewMongoTestCaseStore connects, verifies the connection with a bounded
// ping, and prepares the collection. The driver's pool makes the returned
// store safe for concurrent requests.
func NewMongoTestCaseStore(ctx context.Context, uri, dbName, collName string) (*MongoTestCaseStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, err
	}

	coll := cli.Database(dbName).Collection(collName)

	// Listing sorts newest-first; _id already has its own index.
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})

	return &MongoTestCaseStore{cli: cli, coll: coll}, nil
}

type testCaseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Token       string             `bson:"token"`
	Secret      string             `bson:"secret,omitempty"`
	Description string             `bson:"description,omitempty"`
	Metadata    string             `bson:"metadata,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d testCaseDoc) toTestCase() TestCase {
	return TestCase{
		ID:          d.ID.Hex(),
		Token:       d.Token,
		Secret:      d.Secret,
		Description: d.Description,
		Metadata:    d.Metadata,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *MongoTestCaseStore) Insert(ctx context.Context, tc *TestCase) (*TestCase, error) {
	doc := testCaseDoc{
		ID:          primitive.NewObjectID(),
		Token:       tc.Token,
		Secret:      tc.Secret,
		Description: tc.Description,
		Metadata:    tc.Metadata,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	out := doc.toTestCase()
	return &out, nil
}

func (s *MongoTestCaseStore) ListAll(ctx context.Context) ([]TestCase, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	var out []TestCase
	for cur.Next(ctx) {
		var doc testCaseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		out = append(out, doc.toTestCase())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, nil
}

func (s *MongoTestCaseStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoTestCaseStore) Ping(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.cli.Ping(pctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *MongoTestCaseStore) Close(ctx context.Context) error {
	return s.cli.Disconnect(ctx)
}

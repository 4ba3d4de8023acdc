package contents

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/jsongraph/pkg/errors"
)

// DefaultMongoCollection is the collection documents are stored in.
const DefaultMongoCollection = "documents"

// MongoSink stores the contents of one document, keyed by _id.
type MongoSink struct {
	coll *mongo.Collection
	id   string
}

// NewMongoSink creates a sink for document id in coll.
//
// Errors:
//   - INVALID_CONFIG: id is not a valid document ID
func NewMongoSink(coll *mongo.Collection, id string) (*MongoSink, error) {
	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	return &MongoSink{coll: coll, id: id}, nil
}

// ConnectMongo connects to uri and returns a sink for id in
// database/collection. An empty collection uses DefaultMongoCollection.
func ConnectMongo(ctx context.Context, uri, database, collection, id string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	sink, err := NewMongoSink(client.Database(database).Collection(collection), id)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return sink, nil
}

// SetContents upserts the record for the document.
func (s *MongoSink) SetContents(ctx context.Context, c Contents) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.id}, bson.M{
		"$set": bson.M{
			"text":                 c.Text,
			"has_external_changes": c.HasExternalChanges,
			"skip_derived_update":  c.SkipDerivedUpdate,
			"revision":             c.Revision,
			"updated_at":           c.UpdatedAt,
		},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "upsert document %s", s.id)
	}
	return nil
}

// Load implements Source.
func (s *MongoSink) Load(ctx context.Context) (*Contents, error) {
	res := s.coll.FindOne(ctx, bson.M{"_id": s.id})
	if err := res.Err(); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New(errors.ErrCodeNotFound, "document %s not found", s.id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find document %s", s.id)
	}

	var c Contents
	if err := res.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode document %s", s.id)
	}
	return &c, nil
}

// Close disconnects the underlying client.
func (s *MongoSink) Close() error {
	return s.coll.Database().Client().Disconnect(context.Background())
}

func (s *MongoSink) String() string {
	return "mongo:" + s.coll.Database().Name() + "." + s.coll.Name() + "/" + s.id
}

var _ Store = (*MongoSink)(nil)

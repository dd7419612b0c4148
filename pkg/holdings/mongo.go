package holdings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wealthmap/wealthmap/pkg/errors"
)

// MongoStore is a MongoDB-backed Store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures a MongoDB store connection.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Collection == "" {
		opts.Collection = "holdings"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "mongo connect failed")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "mongo ping failed")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// holdingDoc is the MongoDB document shape. Decimal amounts travel as
// strings so no precision is lost to float64 round-trips.
type holdingDoc struct {
	ID           string    `bson:"_id"`
	Symbol       string    `bson:"symbol"`
	Name         string    `bson:"name"`
	Type         string    `bson:"type"`
	Shares       string    `bson:"shares"`
	AvgCost      string    `bson:"avg_cost"`
	CurrentPrice string    `bson:"current_price"`
	Sector       string    `bson:"sector,omitempty"`
	Platform     string    `bson:"platform,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toDoc(h Holding) holdingDoc {
	return holdingDoc{
		ID:           h.ID,
		Symbol:       h.Symbol,
		Name:         h.Name,
		Type:         string(h.Type),
		Shares:       h.Shares.String(),
		AvgCost:      h.AvgCost.String(),
		CurrentPrice: h.CurrentPrice.String(),
		Sector:       h.Sector,
		Platform:     h.Platform,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func fromDoc(d holdingDoc) (Holding, error) {
	shares, err := decimal.NewFromString(d.Shares)
	if err != nil {
		return Holding{}, errors.Wrap(errors.ErrCodeStorage, err, "corrupt shares for %s", d.ID)
	}
	avgCost, err := decimal.NewFromString(d.AvgCost)
	if err != nil {
		return Holding{}, errors.Wrap(errors.ErrCodeStorage, err, "corrupt avg_cost for %s", d.ID)
	}
	price, err := decimal.NewFromString(d.CurrentPrice)
	if err != nil {
		return Holding{}, errors.Wrap(errors.ErrCodeStorage, err, "corrupt current_price for %s", d.ID)
	}
	return Holding{
		ID:           d.ID,
		Symbol:       d.Symbol,
		Name:         d.Name,
		Type:         AssetType(d.Type),
		Shares:       shares,
		AvgCost:      avgCost,
		CurrentPrice: price,
		Sector:       d.Sector,
		Platform:     d.Platform,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// Create persists a new holding.
func (s *MongoStore) Create(ctx context.Context, h Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if _, err := s.coll.InsertOne(ctx, toDoc(h)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New(errors.ErrCodeInvalidInput, "holding already exists: %s", h.ID)
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "insert failed")
	}
	return nil
}

// Get retrieves a holding by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Holding, error) {
	var doc holdingDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return Holding{}, errors.New(errors.ErrCodeHoldingNotFound, "holding not found: %s", id)
	}
	if err != nil {
		return Holding{}, errors.Wrap(errors.ErrCodeStorage, err, "find failed")
	}
	return fromDoc(doc)
}

// Update applies a partial update and returns the updated holding.
// The read-modify-write runs client side so Update validation applies.
func (s *MongoStore) Update(ctx context.Context, id string, u Update) (Holding, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Holding{}, err
	}
	updated, err := u.Apply(current)
	if err != nil {
		return Holding{}, err
	}
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, toDoc(updated))
	if err != nil {
		return Holding{}, errors.Wrap(errors.ErrCodeStorage, err, "replace failed")
	}
	if res.MatchedCount == 0 {
		return Holding{}, errors.New(errors.ErrCodeHoldingNotFound, "holding not found: %s", id)
	}
	return updated, nil
}

// Delete removes a holding by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete failed")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeHoldingNotFound, "holding not found: %s", id)
	}
	return nil
}

// List returns all holdings ordered by symbol, then ID.
func (s *MongoStore) List(ctx context.Context) ([]Holding, error) {
	opts := options.Find().SetSort(bson.D{{Key: "symbol", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find failed")
	}
	defer cursor.Close(ctx)

	var out []Holding
	for cursor.Next(ctx) {
		var doc holdingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode failed")
		}
		h, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "cursor failed")
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)

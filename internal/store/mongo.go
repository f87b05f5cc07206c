package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/model"
)

const (
	foodCollection    = "food_entries"
	profileCollection = "user_profile"
)

// Mongo is the MongoDB-backed alternative to SQLite.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

type foodDoc struct {
	ID        string   `bson:"_id"`
	Names     []string `bson:"names"`
	Calories  float64  `bson:"calories"`
	Protein   float64  `bson:"protein"`
	Carbs     float64  `bson:"carbs"`
	Fats      float64  `bson:"fats"`
	Timestamp int64    `bson:"timestamp"`
}

type profileDoc struct {
	ID            int      `bson:"_id"`
	CurrentWeight *float64 `bson:"current_weight"`
	GoalWeight    *float64 `bson:"goal_weight"`
	Height        *float64 `bson:"height"`
	Gender        string   `bson:"gender"`
	ActivityLevel string   `bson:"activity_level"`
	Age           *int     `bson:"age"`
}

// NewMongo connects, pings the primary and ensures the timestamp index.
func NewMongo(ctx context.Context, uri, database string, log *zap.Logger) (*Mongo, error) {
	logger := log.Named("mongodb")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", database))

	m := &Mongo{client: client, db: client.Database(database), log: logger}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(foodCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("by-timestamp"),
	})
	if err != nil {
		return fmt.Errorf("create timestamp index: %w", err)
	}
	return nil
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	m.log.Info("closing MongoDB connection")
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping MongoDB: %w", err)
	}
	return nil
}

func (m *Mongo) Put(ctx context.Context, e model.FoodEntry) error {
	if e.ID == "" {
		return fmt.Errorf("food entry id is required")
	}
	doc := foodDoc{
		ID:        e.ID,
		Names:     e.Names,
		Calories:  e.Calories,
		Protein:   e.Protein,
		Carbs:     e.Carbs,
		Fats:      e.Fats,
		Timestamp: e.Timestamp,
	}
	if doc.Names == nil {
		doc.Names = []string{}
	}
	_, err := m.db.Collection(foodCollection).ReplaceOne(ctx, bson.M{"_id": e.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put food entry %s: %w", e.ID, err)
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, id string) (model.FoodEntry, error) {
	var doc foodDoc
	err := m.db.Collection(foodCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.FoodEntry{}, fmt.Errorf("food entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.FoodEntry{}, fmt.Errorf("get food entry %s: %w", id, err)
	}
	return doc.entry(), nil
}

func (m *Mongo) AllByTimestamp(ctx context.Context) ([]model.FoodEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := m.db.Collection(foodCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]model.FoodEntry, 0)
	for cursor.Next(ctx) {
		var doc foodDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode food entry: %w", err)
		}
		entries = append(entries, doc.entry())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate food entries: %w", err)
	}
	return entries, nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	if _, err := m.db.Collection(foodCollection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete food entry %s: %w", id, err)
	}
	return nil
}

func (m *Mongo) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var doc profileDoc
	err := m.db.Collection(profileCollection).FindOne(ctx, bson.M{"_id": ProfileKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return &model.UserProfile{
		CurrentWeight: doc.CurrentWeight,
		GoalWeight:    doc.GoalWeight,
		Height:        doc.Height,
		Gender:        model.ParseGender(doc.Gender),
		ActivityLevel: model.LookupActivityLevel(doc.ActivityLevel),
		Age:           doc.Age,
	}, nil
}

func (m *Mongo) PutProfile(ctx context.Context, p model.UserProfile) error {
	doc := profileDoc{
		ID:            ProfileKey,
		CurrentWeight: p.CurrentWeight,
		GoalWeight:    p.GoalWeight,
		Height:        p.Height,
		Gender:        p.Gender.String(),
		ActivityLevel: p.ActivityLevel.Key(),
		Age:           p.Age,
	}
	_, err := m.db.Collection(profileCollection).ReplaceOne(ctx, bson.M{"_id": ProfileKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put user profile: %w", err)
	}
	return nil
}

func (d foodDoc) entry() model.FoodEntry {
	return model.FoodEntry{
		ID:        d.ID,
		Names:     d.Names,
		Calories:  d.Calories,
		Protein:   d.Protein,
		Carbs:     d.Carbs,
		Fats:      d.Fats,
		Timestamp: d.Timestamp,
	}
}

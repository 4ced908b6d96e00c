package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string // default "cyclecut"
	Collection string // default "runs"
	Timeout    time.Duration
}

// MongoStore keeps runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, checks the connection and ensures the
// created_at index used by List exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "cyclecut"
	}
	if cfg.Collection == "" {
		cfg.Collection = "runs"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// runDoc is the stored form of a Run. Nested values get explicit field
// names so the documents stay readable from the mongo shell.
type runDoc struct {
	ID         string       `bson:"_id"`
	CreatedAt  time.Time    `bson:"created_at"`
	Threshold  float64      `bson:"threshold"`
	PointCount int          `bson:"point_count"`
	PointsHash string       `bson:"points_hash,omitempty"`
	Strategy   string       `bson:"strategy"`
	Seed       int64        `bson:"seed"`
	Solution   [][2]float64 `bson:"solution"`
	Indices    []int        `bson:"indices"`
	Stats      statsDoc     `bson:"stats"`
	Valid      bool         `bson:"valid"`
	Cached     bool         `bson:"cached"`
}

type statsDoc struct {
	Edges            int   `bson:"edges"`
	GreedySize       int   `bson:"greedy_size"`
	LocalSearchSize  int   `bson:"local_search_size"`
	FinalSize        int   `bson:"final_size"`
	AnnealRounds     int   `bson:"anneal_rounds"`
	AnnealIterations int   `bson:"anneal_iterations"`
	CycleChecks      int   `bson:"cycle_checks"`
	DurationMillis   int64 `bson:"duration_ms"`
}

func toDoc(r *Run) runDoc {
	sol := make([][2]float64, len(r.Solution))
	for i, p := range r.Solution {
		sol[i] = [2]float64{p.X, p.Y}
	}
	return runDoc{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		Threshold:  r.Threshold,
		PointCount: r.PointCount,
		PointsHash: r.PointsHash,
		Strategy:   string(r.Options.Strategy),
		Seed:       r.Stats.Seed,
		Solution:   sol,
		Indices:    r.Indices,
		Stats: statsDoc{
			Edges:            r.Stats.Edges,
			GreedySize:       r.Stats.GreedySize,
			LocalSearchSize:  r.Stats.LocalSearchSize,
			FinalSize:        r.Stats.FinalSize,
			AnnealRounds:     r.Stats.AnnealRounds,
			AnnealIterations: r.Stats.AnnealIterations,
			CycleChecks:      r.Stats.CycleChecks,
			DurationMillis:   r.Stats.Duration.Milliseconds(),
		},
		Valid:  r.Valid,
		Cached: r.Cached,
	}
}

func fromDoc(d runDoc) *Run {
	sol := make(geom.PointSet, len(d.Solution))
	for i, c := range d.Solution {
		sol[i] = geom.Pt(c[0], c[1])
	}
	return &Run{
		ID:         d.ID,
		CreatedAt:  d.CreatedAt,
		Threshold:  d.Threshold,
		PointCount: d.PointCount,
		PointsHash: d.PointsHash,
		Options:    fvs.Options{Strategy: fvs.Strategy(d.Strategy), Seed: d.Seed},
		Solution:   sol,
		Indices:    d.Indices,
		Stats: fvs.Stats{
			Points:           d.PointCount,
			Edges:            d.Stats.Edges,
			GreedySize:       d.Stats.GreedySize,
			LocalSearchSize:  d.Stats.LocalSearchSize,
			FinalSize:        d.Stats.FinalSize,
			AnnealRounds:     d.Stats.AnnealRounds,
			AnnealIterations: d.Stats.AnnealIterations,
			CycleChecks:      d.Stats.CycleChecks,
			Seed:             d.Seed,
			Duration:         time.Duration(d.Stats.DurationMillis) * time.Millisecond,
		},
		Valid:  d.Valid,
		Cached: d.Cached,
	}
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Run, error) {
	var d runDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find run %s: %w", id, err)
	}
	return fromDoc(d), nil
}

func (s *MongoStore) Put(ctx context.Context, run *Run) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": run.ID}, toDoc(run), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store run %s: %w", run.ID, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Run, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(clampLimit(limit)))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var docs []runDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	out := make([]*Run, len(docs))
	for i, d := range docs {
		out[i] = fromDoc(d)
	}
	return out, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMazeNotFound = i.ErrMazeNotFound

// mazeDocument is the stored shape of a saved maze.
type mazeDocument struct {
	ID        string        `bson:"_id"`
	Width     int           `bson:"width"`
	Height    int           `bson:"height"`
	Start     maze.Position `bson:"start"`
	End       maze.Position `bson:"end"`
	Cells     []maze.Cell   `bson:"cells"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

// MazeRepo handles the persistence of saved mazes.
type MazeRepo struct {
	collection *mongo.Collection
	timeout    time.Duration
}

var _ i.MazeRepo = &MazeRepo{}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
		timeout:    2 * time.Second,
	}
}

// Save inserts or replaces the maze stored under id.
func (r *MazeRepo) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"_id": id.String()}
	update := bson.M{
		"$set": bson.M{
			"width":     m.Width,
			"height":    m.Height,
			"start":     m.Start,
			"end":       m.End,
			"cells":     m.Cells,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("saving maze %s: %w", id, err)
	}
	return nil
}

// ByID retrieves a maze by its ID.
// Returns ErrMazeNotFound if there is no such maze.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mazeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrMazeNotFound, id)
		}
		return nil, fmt.Errorf("loading maze %s: %w", id, err)
	}
	return doc.toMaze(), nil
}

func (d mazeDocument) toMaze() *maze.Maze {
	m := &maze.Maze{
		Width:  d.Width,
		Height: d.Height,
		Start:  d.Start,
		End:    d.End,
		Cells:  d.Cells,
	}
	m.Reindex()
	return m
}

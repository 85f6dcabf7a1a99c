/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into two files:
 * match_records (match records and the athletes derived from them) and pages. Each of these files contain methods
 * for interacting with that part of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageFetcher downloads a page when the cached copy is missing or expired
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Fetcher     PageFetcher
	Collections struct {
		Matches  *mongo.Collection
		Athletes *mongo.Collection
		Pages    *mongo.Collection
	}
}

// Function for initialising Store. Sets collection values and initialises db connection
// Preconditions: Receives strings containing dbName and mongoURI, and the PageFetcher used by the page cache
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, fetcher PageFetcher) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{Client: client, Database: db, Fetcher: fetcher}
	s.Collections.Matches = db.Collection("match_records")
	s.Collections.Athletes = db.Collection("athletes")
	s.Collections.Pages = db.Collection("pages")
	return s, nil
}

// EnsureIndexes creates the indexes used by the athlete and competition queries
// Preconditions: Receives context, the store must be connected
// Postconditions: Returns error if index creation fails
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Matches.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sport", Value: 1}, {Key: "competition_id", Value: 1}}},
		{Keys: bson.D{{Key: "sport", Value: 1}, {Key: "competitors.athlete.id", Value: 1}}},
		{Keys: bson.D{{Key: "sport", Value: 1}, {Key: "competitors.members.id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create match indexes: %w", err)
	}

	_, err = s.Collections.Athletes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sport", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create athlete index: %w", err)
	}
	return nil
}

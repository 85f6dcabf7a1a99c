/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"sports-results/api/external"
	"sports-results/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	StoreMatchRecords(ctx context.Context, sport shared.Sport, records []external.MatchRecord) (int, error)
	FetchAthleteRecords(ctx context.Context, sport shared.Sport, athleteID string) ([]external.MatchRecord, error)
	FetchCompetitionRecords(ctx context.Context, sport shared.Sport, competitionID string) ([]external.MatchRecord, error)
	FetchAthletes(ctx context.Context, sport shared.Sport) ([]shared.Athlete, error)
	GetPage(ctx context.Context, url string) (string, error)

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}

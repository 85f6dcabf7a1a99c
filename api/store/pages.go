/* pages.go
 * Contains the methods for interacting with the pages collection, a TTL cache in front of the page fetcher
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to get a page. Checks if the cached copy in the db is outdated, if it is, fetches the page and updates
// the local db
// Preconditions: Receives context and string containing the page url
// Postconditions: Returns the page body, or an error if it occurs
func (s *Store) GetPage(ctx context.Context, url string) (string, error) {
	var cached PageDocument
	err := s.Collections.Pages.FindOne(ctx, bson.M{"_id": url}).Decode(&cached)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("error fetching cached page from db: %w", err)
	}
	if err == nil && cached.TTL >= time.Now().Unix() {
		return cached.Body, nil
	}

	if s.Fetcher == nil {
		return "", fmt.Errorf("no page fetcher configured")
	}
	body, err := s.Fetcher.FetchPage(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching page: %w", err)
	}

	page := PageDocument{URL: url, Body: body, TTL: DetermineTTL(body), FetchedAt: time.Now().Unix()}
	_, err = s.Collections.Pages.ReplaceOne(ctx, bson.M{"_id": url}, page, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("failed to cache page: %w", err)
	}
	return body, nil
}

// liveMarkers are the fragments that result pages show while a competition is in progress
var liveMarkers = []string{"match-live", "class=\"live\"", "in progress", "live results"}

// Function for calculating TTL for page caching. If the page shows a competition in progress this is shortTTL,
// else normalTTL. These values are defined in a const within the function
// Preconditions: Receives the page body
// Postconditions: Returns the unix time at which the cached page expires
func DetermineTTL(body string) int64 {
	const (
		shortTTL  = 3 * time.Minute  // When a competition is live TTL is 3 minutes
		normalTTL = 30 * time.Minute // Else it is 30
	)

	lower := strings.ToLower(body)
	for _, marker := range liveMarkers {
		if strings.Contains(lower, marker) {
			return time.Now().Add(shortTTL).Unix()
		}
	}
	return time.Now().Add(normalTTL).Unix()
}

/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"os"
	"testing"

	"sports-results/api/external"
)

// NewTestStore creates a Store connected to the database in MONGO_TEST_URI. The test is skipped when it is not set,
// and the database is dropped when the test finishes
func NewTestStore(t *testing.T, fetcher PageFetcher) *Store {
	t.Helper()
	mongoURI := os.Getenv("MONGO_TEST_URI")
	if mongoURI == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	store, err := NewStore("test_sports_results", mongoURI, fetcher)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Database.Drop(context.TODO())
		store.Client.Disconnect(context.TODO())
	})
	return store
}

// CreateSampleRecords creates sample archery MatchRecord data for testing.
func CreateSampleRecords() []external.MatchRecord {
	phase := func(p int) *int { return &p }
	win := func(b bool) *bool { return &b }
	return []external.MatchRecord{
		{
			ID:            "WC1-RM-QF",
			CompetitionID: "WC1",
			Competition:   "World Cup Stage 1",
			EventCode:     "RM",
			Event:         "Recurve Men",
			Phase:         phase(4),
			Date:          "2024-04-24",
			Competitors: []external.CompetitorRecord{
				{Athlete: &external.AthleteRecord{ID: "A1", Name: "Dhiraj Bommadevara", NOC: "IND"}, Score: "6", WinLose: win(true)},
				{Athlete: &external.AthleteRecord{ID: "B1", Name: "Mete Gazoz", NOC: "TUR"}, Score: "4", WinLose: win(false)},
			},
		},
		{
			CompetitionID: "WC1",
			EventCode:     "RMT",
			Phase:         phase(0),
			Date:          "2024-04-25",
			IsTeam:        true,
			Competitors: []external.CompetitorRecord{
				{Name: "India", NOC: "IND", Members: []external.AthleteRecord{{ID: "A1", Name: "Dhiraj Bommadevara", NOC: "IND"}, {ID: "A2", Name: "Tarundeep Rai", NOC: "IND"}}, WinLose: win(true)},
				{Name: "Korea", NOC: "KOR", Members: []external.AthleteRecord{{ID: "K1", Name: "Kim Woojin", NOC: "KOR"}}, WinLose: win(false)},
			},
		},
		{
			ID:            "WC2-RM-R16",
			CompetitionID: "WC2",
			EventCode:     "RM",
			Phase:         phase(8),
			Date:          "2024-05-20",
			Competitors: []external.CompetitorRecord{
				{Athlete: &external.AthleteRecord{ID: "B1", Name: "Mete Gazoz", NOC: "TUR"}, WinLose: win(true)},
				{Athlete: &external.AthleteRecord{ID: "K1", Name: "Kim Woojin", NOC: "KOR"}, WinLose: win(false)},
			},
		},
	}
}

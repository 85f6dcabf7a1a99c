/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package and its consumers
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"slices"

	"sports-results/api/external"
	"sports-results/api/shared"
	"sports-results/api/store"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Records  map[shared.Sport][]external.MatchRecord
	Athletes map[shared.Sport][]shared.Athlete
	Pages    map[string]string

	// Error injection for testing error paths
	StoreMatchRecordsError       error
	FetchAthleteRecordsError     error
	FetchCompetitionRecordsError error
	FetchAthletesError           error
	GetPageError                 error

	// PageRequests counts GetPage calls per url
	PageRequests map[string]int
	Database     interface{ Name() string }
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// NewMockStore creates a new, empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Records:      make(map[shared.Sport][]external.MatchRecord),
		Athletes:     make(map[shared.Sport][]shared.Athlete),
		Pages:        make(map[string]string),
		PageRequests: make(map[string]int),
		Database:     &mockDatabase{name: "test_db"},
	}
}

var _ store.Interface = (*MockStore)(nil)

// StoreMatchRecords mock implementation. Records replace existing ones with the same id and their athletes are
// added to Athletes
func (m *MockStore) StoreMatchRecords(ctx context.Context, sport shared.Sport, records []external.MatchRecord) (int, error) {
	if m.StoreMatchRecordsError != nil {
		return 0, m.StoreMatchRecordsError
	}
	for _, r := range records {
		r.Sport = string(sport)
		if r.ID == "" {
			r.ID = store.RecordID(r)
		}
		existing := m.Records[sport]
		if i := slices.IndexFunc(existing, func(e external.MatchRecord) bool { return e.ID == r.ID }); i >= 0 {
			existing[i] = r
		} else {
			m.Records[sport] = append(existing, r)
		}
	}
	for _, a := range store.AthletesFromRecords(sport, records) {
		if !slices.ContainsFunc(m.Athletes[sport], func(e shared.Athlete) bool { return e.ID == a.AthleteID }) {
			m.Athletes[sport] = append(m.Athletes[sport], a.ToAthlete())
		}
	}
	return len(records), nil
}

// FetchAthleteRecords mock implementation
func (m *MockStore) FetchAthleteRecords(ctx context.Context, sport shared.Sport, athleteID string) ([]external.MatchRecord, error) {
	if m.FetchAthleteRecordsError != nil {
		return nil, m.FetchAthleteRecordsError
	}
	found := []external.MatchRecord{}
	for _, r := range m.Records[sport] {
		if recordHasAthlete(r, athleteID) {
			found = append(found, r)
		}
	}
	return found, nil
}

// FetchCompetitionRecords mock implementation
func (m *MockStore) FetchCompetitionRecords(ctx context.Context, sport shared.Sport, competitionID string) ([]external.MatchRecord, error) {
	if m.FetchCompetitionRecordsError != nil {
		return nil, m.FetchCompetitionRecordsError
	}
	found := []external.MatchRecord{}
	for _, r := range m.Records[sport] {
		if r.CompetitionID == competitionID {
			found = append(found, r)
		}
	}
	return found, nil
}

// FetchAthletes mock implementation
func (m *MockStore) FetchAthletes(ctx context.Context, sport shared.Sport) ([]shared.Athlete, error) {
	if m.FetchAthletesError != nil {
		return nil, m.FetchAthletesError
	}
	return m.Athletes[sport], nil
}

// GetPage mock implementation
func (m *MockStore) GetPage(ctx context.Context, url string) (string, error) {
	m.PageRequests[url]++
	if m.GetPageError != nil {
		return "", m.GetPageError
	}
	page, ok := m.Pages[url]
	if !ok {
		return "", fmt.Errorf("failed to fetch page %s: status code 404", url)
	}
	return page, nil
}

// GetDatabase mock implementation
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return m.Database
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return nil
}

func recordHasAthlete(r external.MatchRecord, athleteID string) bool {
	for _, c := range r.Competitors {
		if c.Athlete != nil && c.Athlete.ID == athleteID {
			return true
		}
		for _, member := range c.Members {
			if member.ID == athleteID {
				return true
			}
		}
	}
	return false
}

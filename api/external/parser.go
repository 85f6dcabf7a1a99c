/* parser.go
 * Contains the logic used in processing structured JSON results and normalising them into RawMatch values that
 * other functions can use
 * Authors: Zachary Bower
 */

package external

import (
	"encoding/json"
	"fmt"
	"strings"

	"sports-results/api/shared"
)

// ParseMatchRecords decodes a JSON array of structured match records
// Preconditions: Receives bytes containing a JSON array, or an object with a "result" array
// Postconditions: Returns the decoded records, or an error if the JSON is malformed
func ParseMatchRecords(data []byte) ([]MatchRecord, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var root struct {
			Result []MatchRecord `json:"result"`
		}
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("error parsing JSON: %w", err)
		}
		return root.Result, nil
	}

	var records []MatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	return records, nil
}

// RecordsToMatches normalises a slice of records, dropping records with no competitors
// Preconditions: Receives slice of MatchRecord and the sport they belong to
// Postconditions: Returns slice of RawMatch in input order
func RecordsToMatches(records []MatchRecord, sport shared.Sport) []shared.RawMatch {
	matches := make([]shared.RawMatch, 0, len(records))
	for _, record := range records {
		match := RecordToMatch(record, sport)
		if len(match.Competitors) == 0 {
			continue
		}
		matches = append(matches, match)
	}
	return matches
}

// RecordToMatch normalises one structured record into a RawMatch
// Preconditions: Receives a MatchRecord and the sport it belongs to (used when the record has none)
// Postconditions: Returns the RawMatch. Missing fields fall back to empty values, never an error
func RecordToMatch(record MatchRecord, sport shared.Sport) shared.RawMatch {
	if s, ok := shared.ParseSport(record.Sport); ok {
		sport = s
	}
	phase := shared.NoPhase
	if record.Phase != nil {
		phase = *record.Phase
	}

	match := shared.RawMatch{
		ID:            record.ID,
		Sport:         sport,
		CompetitionID: record.CompetitionID,
		Competition:   record.Competition,
		EventCode:     record.EventCode,
		Event:         record.Event,
		Round:         record.Round,
		Phase:         phase,
		IsTeamEvent:   record.IsTeam,
		Date:          record.Date,
	}
	for _, c := range record.Competitors {
		match.Competitors = append(match.Competitors, NormalizeCompetitor(c))
	}
	if match.Event == "" {
		match.Event = match.EventCode
	}
	if match.Competition == "" {
		match.Competition = match.CompetitionID
	}
	return match
}

// NormalizeCompetitor picks the identity shape present in the record: Athlete, then Members, then the flat Name/NOC
// Preconditions: Receives a CompetitorRecord
// Postconditions: Returns a Competitor with identity, score, qualifying rank and outcome populated
func NormalizeCompetitor(record CompetitorRecord) shared.Competitor {
	var identity shared.Identity
	switch {
	case record.Athlete != nil:
		identity = shared.Individual{Athlete: toAthlete(*record.Athlete)}
	case len(record.Members) > 0:
		members := make([]shared.Athlete, 0, len(record.Members))
		for _, m := range record.Members {
			members = append(members, toAthlete(m))
		}
		identity = shared.Team{Name: record.Name, Country: record.NOC, Members: members}
	default:
		identity = shared.NamedOnly{Name: record.Name, Country: record.NOC}
	}

	competitor := shared.Competitor{
		Identity: identity,
		Score:    shared.Score{Total: string(record.Score)},
	}
	for _, set := range record.Sets {
		competitor.Score.Sets = append(competitor.Score.Sets, int(set))
	}

	if record.QualRank != nil {
		competitor.QualRank = *record.QualRank
		competitor.Bye = *record.QualRank == 0
	}

	switch {
	case competitor.Bye:
		competitor.Outcome = shared.OutcomeBye
	case record.WinLose == nil:
		competitor.Outcome = shared.OutcomeUnknown
	case *record.WinLose:
		competitor.Outcome = shared.OutcomeWon
	default:
		competitor.Outcome = shared.OutcomeLost
	}
	return competitor
}

// Helper function to convert an AthleteRecord, defaulting the name to "Unknown"
func toAthlete(record AthleteRecord) shared.Athlete {
	name := strings.TrimSpace(record.Name)
	if name == "" {
		name = "Unknown"
	}
	return shared.Athlete{ID: record.ID, Name: name, Country: strings.ToUpper(strings.TrimSpace(record.NOC))}
}

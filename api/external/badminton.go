/* badminton.go
 * Contains the adapter for the near-final badminton match objects. Games are stored as home/away pairs, home being
 * team1, and are split onto each side's set scores
 * Authors: Zachary Bower
 */

package external

import (
	"encoding/json"
	"fmt"
	"strings"

	"sports-results/api/shared"
)

// ParseBadmintonMatches decodes a JSON array of badminton match objects into RawMatch values
// Preconditions: Receives bytes containing a JSON array of match objects
// Postconditions: Returns the matches in input order, or an error if the JSON is malformed
func ParseBadmintonMatches(data []byte) ([]shared.RawMatch, error) {
	var raw []BadmintonMatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	matches := make([]shared.RawMatch, 0, len(raw))
	for _, m := range raw {
		matches = append(matches, BadmintonToMatch(m))
	}
	return matches, nil
}

// BadmintonToMatch converts one badminton match object
// Preconditions: Receives a BadmintonMatch
// Postconditions: Returns a two-competitor RawMatch. winner 1 or 2 marks the sides won/lost, anything else leaves
// both outcomes unknown
func BadmintonToMatch(m BadmintonMatch) shared.RawMatch {
	home := badmintonCompetitor(m.Team1)
	away := badmintonCompetitor(m.Team2)
	for _, game := range m.Score {
		home.Score.Sets = append(home.Score.Sets, game.Home)
		away.Score.Sets = append(away.Score.Sets, game.Away)
	}

	switch m.Winner {
	case 1:
		home.Outcome, away.Outcome = shared.OutcomeWon, shared.OutcomeLost
	case 2:
		home.Outcome, away.Outcome = shared.OutcomeLost, shared.OutcomeWon
	}

	return shared.RawMatch{
		ID:            m.ID,
		Sport:         shared.SportBadminton,
		CompetitionID: m.Tournament,
		Competition:   m.Tournament,
		EventCode:     m.Event,
		Event:         m.Event,
		Round:         m.Round,
		Phase:         shared.NoPhase,
		IsTeamEvent:   len(m.Team1.Players) > 1 || len(m.Team2.Players) > 1,
		Competitors:   []shared.Competitor{home, away},
	}
}

func badmintonCompetitor(team BadmintonTeam) shared.Competitor {
	members := make([]shared.Athlete, 0, len(team.Players))
	for _, p := range team.Players {
		members = append(members, shared.Athlete{
			ID:      p.ID,
			Name:    strings.TrimSpace(p.Name),
			Country: strings.ToUpper(strings.TrimSpace(p.Country)),
		})
	}
	return shared.Competitor{Identity: shared.Team{Members: members}}
}

/* stats.go
 * Contains the per-athlete statistics aggregated over grouped results
 * Authors: Zachary Bower
 */

package logic

import "sports-results/api/shared"

// AthleteStats sums medals and bracket counts across every event an athlete took part in
type AthleteStats struct {
	Gold          int `json:"gold"`
	Silver        int `json:"silver"`
	Bronze        int `json:"bronze"`
	Matches       int `json:"matches"`
	Competitions  int `json:"competitions"`
	Events        int `json:"events"`
	Byes          int `json:"byes"`
	RoundsReached int `json:"roundsReached"`
}

// Medals returns the total number of medals
func (s AthleteStats) Medals() int {
	return s.Gold + s.Silver + s.Bronze
}

// AggregateStats sums the medal derivations and match counts of every event group
// Preconditions: Receives the output of GroupMatches
// Postconditions: Returns the totals, zero valued when groups is empty
func AggregateStats(groups []CompetitionGroup) AthleteStats {
	var stats AthleteStats
	for _, g := range groups {
		stats.Competitions++
		for _, e := range g.Events {
			stats.Events++
			stats.Matches += e.Matches
			stats.Byes += e.Byes
			stats.RoundsReached += e.RoundsReached
			switch e.Medal {
			case shared.MedalGold:
				stats.Gold++
			case shared.MedalSilver:
				stats.Silver++
			case shared.MedalBronze:
				stats.Bronze++
			}
		}
	}
	return stats
}

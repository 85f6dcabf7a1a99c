/* filter.go
 * Contains the nationality filter and the side selectors used to decide which competitor of a match is tracked
 * Authors: Zachary Bower
 */

package logic

import "sports-results/api/shared"

// InvolvesCountry reports whether any competitor of the match, or any member of a team competitor, represents code
func InvolvesCountry(match shared.RawMatch, code string) bool {
	for _, c := range match.Competitors {
		if c.HasCountry(code) {
			return true
		}
	}
	return false
}

// FilterByCountry keeps the matches involving code, in input order
// Preconditions: Receives slice of RawMatch and a country code
// Postconditions: Returns a new slice, empty (not nil) when nothing matches
func FilterByCountry(matches []shared.RawMatch, code string) []shared.RawMatch {
	filtered := make([]shared.RawMatch, 0, len(matches))
	for _, m := range matches {
		if InvolvesCountry(m, code) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// NoSide is returned by a SideSelector when no competitor is tracked
const NoSide = -1

// SideSelector picks the index of the tracked competitor in a match
type SideSelector interface {
	Side(m shared.RawMatch) int
}

// AthleteSelector tracks the competitor holding any of the athlete ids, directly or as a team member
type AthleteSelector struct {
	IDs []string
}

func (s AthleteSelector) Side(m shared.RawMatch) int {
	for i, c := range m.Competitors {
		if c.HasAthlete(s.IDs) {
			return i
		}
	}
	return NoSide
}

// CountrySelector tracks the competitor representing Code. When several sides represent Code the winning one is
// tracked, so an all-country final counts as that country's gold
type CountrySelector struct {
	Code string
}

func (s CountrySelector) Side(m shared.RawMatch) int {
	side := NoSide
	for i, c := range m.Competitors {
		if !c.HasCountry(s.Code) {
			continue
		}
		if c.Outcome == shared.OutcomeWon {
			return i
		}
		if side == NoSide {
			side = i
		}
	}
	return side
}

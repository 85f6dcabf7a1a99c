/* models.go
 * This file contain the interfaces, structs and helper functions that are shared between sub packages. Every sport
 * adapter produces RawMatch values, and every later stage (filter, grouping, formatting) only reads this shape
 * Authors: Zachary Bower
 */

package shared

import "strings"

// DefaultCountry is the target country used when none is configured
const DefaultCountry = "IND"

// Sport identifies which adapter and round table a payload belongs to
type Sport string

const (
	SportArchery     Sport = "archery"
	SportBadminton   Sport = "badminton"
	SportTableTennis Sport = "tabletennis"
	SportShooting    Sport = "shooting"
)

// Sports lists every sport the pipeline understands, in display order
var Sports = []Sport{SportArchery, SportBadminton, SportTableTennis, SportShooting}

// ParseSport converts user input such as "Table Tennis" or "table-tennis" into a Sport
// Preconditions: Receives a string containing the sport name
// Postconditions: Returns the Sport and true, or "" and false if the sport is unknown
func ParseSport(name string) (Sport, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "archery":
		return SportArchery, true
	case "badminton":
		return SportBadminton, true
	case "tabletennis", "tt", "pingpong":
		return SportTableTennis, true
	case "shooting", "issf":
		return SportShooting, true
	}
	return "", false
}

// Identity is the tagged union for the three competitor shapes found in source data:
// an individual athlete, a team with members, or a flat name/country pair
type Identity interface {
	GetType() string
	DisplayName() string
	Countries() []string
	AthleteIDs() []string
}

// Athlete is a single person as referenced by the result sources
type Athlete struct {
	ID      string `json:"id,omitempty" bson:"id,omitempty"`
	Name    string `json:"name" bson:"name"`
	Country string `json:"country" bson:"country"`
}

// Individual is a competitor identified by one athlete
type Individual struct {
	Athlete Athlete
}

func (i Individual) GetType() string {
	return "individual"
}

func (i Individual) DisplayName() string {
	return i.Athlete.Name
}

func (i Individual) Countries() []string {
	if i.Athlete.Country == "" {
		return nil
	}
	return []string{i.Athlete.Country}
}

func (i Individual) AthleteIDs() []string {
	if i.Athlete.ID == "" {
		return nil
	}
	return []string{i.Athlete.ID}
}

// Team is a competitor made of several members. Country is the team's own code, which can be empty for
// mixed-nationality pairs
type Team struct {
	Name    string
	Country string
	Members []Athlete
}

func (t Team) GetType() string {
	return "team"
}

// DisplayName returns the team name, or the member names joined with " / " when the source has no team name
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	names := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		names = append(names, m.Name)
	}
	return strings.Join(names, " / ")
}

// Countries returns the distinct country codes of the team and its members, team code first
func (t Team) Countries() []string {
	var codes []string
	seen := make(map[string]bool)
	add := func(code string) {
		if code != "" && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	add(t.Country)
	for _, m := range t.Members {
		add(m.Country)
	}
	return codes
}

func (t Team) AthleteIDs() []string {
	var ids []string
	for _, m := range t.Members {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// NamedOnly is a competitor that the source only describes with a name and country (scraped HTML)
type NamedOnly struct {
	Name    string
	Country string
}

func (n NamedOnly) GetType() string {
	return "named"
}

func (n NamedOnly) DisplayName() string {
	return n.Name
}

func (n NamedOnly) Countries() []string {
	if n.Country == "" {
		return nil
	}
	return []string{n.Country}
}

func (n NamedOnly) AthleteIDs() []string {
	return nil
}

// Outcome of one competitor in one match
type Outcome string

const (
	OutcomeUnknown Outcome = ""
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeBye     Outcome = "bye"
)

// Score holds either a single total, per-set sub-scores, or both
type Score struct {
	Total string
	Sets  []int
}

// Competitor is one side of a match
type Competitor struct {
	Identity Identity
	Score    Score
	QualRank int
	// Bye is set when the source carried a qualifying rank and it was 0
	Bye     bool
	Outcome Outcome
	// Rank and Remarks are only filled by ranking-table sources (shooting)
	Rank    string
	Remarks string
}

// Name returns the display name of the competitor, or "Unknown" when the identity is missing
func (c Competitor) Name() string {
	if c.Identity == nil || c.Identity.DisplayName() == "" {
		return "Unknown"
	}
	return c.Identity.DisplayName()
}

// Country returns the primary country code of the competitor, or "" when unknown
func (c Competitor) Country() string {
	if c.Identity == nil {
		return ""
	}
	codes := c.Identity.Countries()
	if len(codes) == 0 {
		return ""
	}
	return codes[0]
}

// HasCountry reports whether the competitor, or any team member, represents the given country
func (c Competitor) HasCountry(code string) bool {
	if c.Identity == nil || code == "" {
		return false
	}
	for _, cc := range c.Identity.Countries() {
		if strings.EqualFold(cc, code) {
			return true
		}
	}
	return false
}

// HasAthlete reports whether any of the given athlete ids belongs to this competitor
func (c Competitor) HasAthlete(ids []string) bool {
	if c.Identity == nil {
		return false
	}
	for _, own := range c.Identity.AthleteIDs() {
		for _, id := range ids {
			if own == id {
				return true
			}
		}
	}
	return false
}

// NoPhase marks a RawMatch that does not use archery's numeric phase
const NoPhase = -1

// RawMatch is one contest instance, the common output of all sport adapters
type RawMatch struct {
	ID            string
	Sport         Sport
	CompetitionID string
	Competition   string
	EventCode     string
	Event         string
	Round         string
	Phase         int
	IsTeamEvent   bool
	Date          string
	// ScoreLine is the overall score text as printed by the source, e.g. "3 - 1"
	ScoreLine   string
	Competitors []Competitor
}

// IsBye reports whether any side of the match is a bye
func (m RawMatch) IsBye() bool {
	for _, c := range m.Competitors {
		if c.Bye {
			return true
		}
	}
	return false
}

// Medal awarded for an event
type Medal string

const (
	MedalNone   Medal = ""
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

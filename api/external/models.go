/* models.go
 * This file contains the models used by the external package when decoding data from external sources. The JSON
 * record shapes double as the document shapes stored in mongo
 * Authors: Zachary Bower
 */

package external

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number. Result feeds are inconsistent about score types
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FlexInt accepts either a JSON number or a numeric JSON string. Empty strings decode to 0
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

// AthleteRecord is an athlete as it appears in structured result records
type AthleteRecord struct {
	ID   string `json:"id" bson:"id,omitempty"`
	Name string `json:"name" bson:"name"`
	NOC  string `json:"noc" bson:"noc"`
}

// CompetitorRecord is one side of a structured match record. Identity lives under Athlete (individual), Members
// (team) or the flat Name/NOC pair, depending on the source
type CompetitorRecord struct {
	Athlete  *AthleteRecord  `json:"athlete,omitempty" bson:"athlete,omitempty"`
	Members  []AthleteRecord `json:"members,omitempty" bson:"members,omitempty"`
	Name     string          `json:"name,omitempty" bson:"name,omitempty"`
	NOC      string          `json:"noc,omitempty" bson:"noc,omitempty"`
	QualRank *int            `json:"qualRank,omitempty" bson:"qual_rank,omitempty"`
	Score    FlexString      `json:"score,omitempty" bson:"score,omitempty"`
	Sets     []FlexInt       `json:"sets,omitempty" bson:"sets,omitempty"`
	WinLose  *bool           `json:"winLose,omitempty" bson:"win_lose,omitempty"`
}

// MatchRecord is a structured match result from the per-sport result collections (archery, badminton, table tennis)
type MatchRecord struct {
	ID            string             `json:"id" bson:"_id"`
	Sport         string             `json:"sport" bson:"sport"`
	CompetitionID string             `json:"competitionId" bson:"competition_id"`
	Competition   string             `json:"competition" bson:"competition"`
	EventCode     string             `json:"eventCode" bson:"event_code"`
	Event         string             `json:"event" bson:"event"`
	Round         string             `json:"round,omitempty" bson:"round,omitempty"`
	Phase         *int               `json:"phase,omitempty" bson:"phase,omitempty"`
	IsTeam        bool               `json:"isTeam" bson:"is_team"`
	Date          string             `json:"date,omitempty" bson:"date,omitempty"`
	Competitors   []CompetitorRecord `json:"competitors" bson:"competitors"`
}

// BadmintonPlayer is a player inside a near-final badminton match object
type BadmintonPlayer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// BadmintonTeam is one side of a badminton match: one player for singles, two for doubles
type BadmintonTeam struct {
	Players []BadmintonPlayer `json:"players"`
}

// BadmintonGame is the score of a single game, home being team1
type BadmintonGame struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// BadmintonMatch is the near-final match shape produced by the badminton results feed
type BadmintonMatch struct {
	ID         string          `json:"id"`
	Tournament string          `json:"tournament"`
	Event      string          `json:"event"`
	Round      string          `json:"round"`
	Team1      BadmintonTeam   `json:"team1"`
	Team2      BadmintonTeam   `json:"team2"`
	Winner     int             `json:"winner"`
	Score      []BadmintonGame `json:"score"`
}

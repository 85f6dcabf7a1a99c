/* rounds.go
 * Contains the canonical round orders used to sort matches and pick the most advanced result. Most sports use a
 * token table (round label -> rank), archery derives its rounds from the numeric phase, where the bracket at that
 * stage holds 2*phase matches
 * Authors: Zachary Bower
 */

package logic

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"sports-results/api/shared"
)

// Stage is the part of a bracket a round belongs to. Medal derivation only looks at the stage, never at names
type Stage int

const (
	StageOther Stage = iota
	StageEarly
	StageSemifinal
	StageBronze
	StageFinal
)

var stageNames = map[Stage]string{
	StageOther:     "other",
	StageEarly:     "early",
	StageSemifinal: "semifinal",
	StageBronze:    "bronze",
	StageFinal:     "final",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ParseStage converts a stage name as written in the rounds file
// Preconditions: Receives string containing the stage name, case insensitive
// Postconditions: Returns the Stage and true, or StageOther and false if the name is unknown. An empty name means
// StageEarly
func ParseStage(name string) (Stage, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StageEarly, true
	}
	for stage, s := range stageNames {
		if s == name {
			return stage, true
		}
	}
	return StageOther, false
}

// OtherRoundName is shown for rounds that are missing or not in the sport's table
const OtherRoundName = "Other"

// Round is a resolved round: a stable Key for grouping, a display Name, and a Rank where higher means more advanced.
// Unknown rounds always have Rank 0
type Round struct {
	Key   string
	Name  string
	Rank  int
	Stage Stage
}

// CompareRounds orders rounds by progression, then by key so the order is total
func CompareRounds(a, b Round) int {
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	return strings.Compare(a.Key, b.Key)
}

// RoundOrder resolves the round a match belongs to
type RoundOrder interface {
	Resolve(m shared.RawMatch) Round
}

// RoundEntry is one row of a token round table
type RoundEntry struct {
	Name    string
	Rank    int
	Stage   Stage
	Aliases []string
}

// TokenRoundOrder looks rounds up by their label. Labels are compared after dropping case, spaces and punctuation
type TokenRoundOrder struct {
	rounds map[string]Round
}

// NewTokenRoundOrder builds a TokenRoundOrder from a table. Entries with a rank below 1 are clamped to 1 so that
// every known round sorts above unknown ones
func NewTokenRoundOrder(entries []RoundEntry) TokenRoundOrder {
	order := TokenRoundOrder{rounds: make(map[string]Round)}
	for _, e := range entries {
		round := Round{Key: normalizeToken(e.Name), Name: e.Name, Rank: max(e.Rank, 1), Stage: e.Stage}
		order.rounds[round.Key] = round
		for _, alias := range e.Aliases {
			order.rounds[normalizeToken(alias)] = round
		}
	}
	return order
}

func (o TokenRoundOrder) Resolve(m shared.RawMatch) Round {
	return o.Lookup(m.Round)
}

// Lookup resolves a round label
// Preconditions: Receives the raw round label from the source
// Postconditions: Returns the table entry, or an "Other" round with rank 0 keyed by the label
func (o TokenRoundOrder) Lookup(token string) Round {
	key := normalizeToken(token)
	if round, ok := o.rounds[key]; ok {
		return round
	}
	name := strings.TrimSpace(token)
	if name == "" {
		name = OtherRoundName
	}
	return Round{Key: key, Name: name, Rank: 0, Stage: StageOther}
}

// PhaseRoundOrder maps archery's numeric phase onto rounds: 0 is the gold medal match, 1 the bronze medal match and
// any other phase p is the round with 2*p matches. Fallback is used for records that carry no phase. A fallback round
// that names a bracket round (final, bronze, semifinal, quarterfinal or "Round of N") resolves to the same round as
// its phase, so records with and without a phase sort and group together
type PhaseRoundOrder struct {
	Fallback RoundOrder
}

func (o PhaseRoundOrder) Resolve(m shared.RawMatch) Round {
	if m.Phase >= 0 {
		return PhaseRound(m.Phase)
	}
	var round Round
	if o.Fallback != nil {
		round = o.Fallback.Resolve(m)
	} else {
		round = TokenRoundOrder{}.Lookup(m.Round)
	}
	if phase, ok := equivalentPhase(round); ok {
		return PhaseRound(phase)
	}
	return round
}

// phaseBase keeps every phase above any token table rank, smaller phases being more advanced
const phaseBase = 1 << 30

var roundOfRe = regexp.MustCompile(`^roundof(\d+)$`)

// equivalentPhase maps a round resolved from its label onto the archery phase with the same number of matches.
// Qualification, group and unknown rounds have no phase and keep their token rank, below every phase
func equivalentPhase(round Round) (int, bool) {
	switch round.Stage {
	case StageFinal:
		return 0, true
	case StageBronze:
		return 1, true
	case StageSemifinal:
		return 2, true
	}
	if round.Key == "quarterfinal" {
		return 4, true
	}
	if parts := roundOfRe.FindStringSubmatch(round.Key); parts != nil {
		if n, err := strconv.Atoi(parts[1]); err == nil && n >= 4 && n%2 == 0 {
			return n / 2, true
		}
	}
	return 0, false
}

// PhaseRound resolves a single archery phase
// Preconditions: Receives a phase >= 0
// Postconditions: Returns the Round for that phase. Ranks strictly decrease as the phase grows
func PhaseRound(phase int) Round {
	key := fmt.Sprintf("phase-%d", phase)
	switch phase {
	case 0:
		return Round{Key: key, Name: "Gold Medal Match", Rank: phaseBase + 2, Stage: StageFinal}
	case 1:
		return Round{Key: key, Name: "Bronze Medal Match", Rank: phaseBase + 1, Stage: StageBronze}
	case 2:
		return Round{Key: key, Name: "Semifinals", Rank: phaseBase - phase, Stage: StageSemifinal}
	case 4:
		return Round{Key: key, Name: "Quarterfinals", Rank: phaseBase - phase, Stage: StageEarly}
	}
	return Round{
		Key:   key,
		Name:  fmt.Sprintf("Round of %d", 2*phase),
		Rank:  phaseBase - min(phase, phaseBase-1),
		Stage: StageEarly,
	}
}

// SortByRound returns a copy of matches ordered by round (ascending progression, or descending when descending is
// set). Matches in the same round keep a stable order by id
func SortByRound(matches []shared.RawMatch, order RoundOrder, descending bool) []shared.RawMatch {
	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b shared.RawMatch) int {
		c := CompareRounds(order.Resolve(a), order.Resolve(b))
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if descending {
			return -c
		}
		return c
	})
	return sorted
}

// DefaultRoundTable is the token table shared by the bracket sports
func DefaultRoundTable() []RoundEntry {
	return []RoundEntry{
		{Name: "Qualification", Rank: 10, Stage: StageEarly, Aliases: []string{"qual", "qualifying", "qualifications", "ranking round"}},
		{Name: "Group Stage", Rank: 15, Stage: StageEarly, Aliases: []string{"group", "groups", "round robin"}},
		{Name: "Preliminary Round", Rank: 20, Stage: StageEarly, Aliases: []string{"prelim", "preliminary", "preliminaries"}},
		{Name: "Round of 128", Rank: 30, Stage: StageEarly, Aliases: []string{"r128", "1/64"}},
		{Name: "Round of 64", Rank: 40, Stage: StageEarly, Aliases: []string{"r64", "1/32"}},
		{Name: "Round of 32", Rank: 50, Stage: StageEarly, Aliases: []string{"r32", "1/16"}},
		{Name: "Round of 16", Rank: 60, Stage: StageEarly, Aliases: []string{"r16", "1/8", "last 16"}},
		{Name: "Quarterfinal", Rank: 70, Stage: StageEarly, Aliases: []string{"qf", "quarter final", "quarterfinals", "quarter finals"}},
		{Name: "Semifinal", Rank: 80, Stage: StageSemifinal, Aliases: []string{"sf", "semi final", "semifinals", "semi finals"}},
		{Name: "Bronze Medal Match", Rank: 85, Stage: StageBronze, Aliases: []string{"bronze", "3rd place", "third place", "3rd place match"}},
		{Name: "Final", Rank: 90, Stage: StageFinal, Aliases: []string{"f", "finals", "gold medal match", "grand final"}},
	}
}

// normalizeToken lowercases a label and drops everything that is not a letter or digit
func normalizeToken(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

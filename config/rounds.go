/* rounds.go
 * Loads per-sport round tables and bronze rules from a YAML file. Sports missing from the file keep the built in
 * rules
 * Authors: Zachary Bower
 */

package config

import (
	"fmt"
	"os"

	"sports-results/api/logic"
	"sports-results/api/shared"

	"gopkg.in/yaml.v3"
)

// RoundsFile is the document stored at ROUNDS_FILE
type RoundsFile struct {
	Sports map[string]SportRounds `yaml:"sports"`
}

// SportRounds configures one sport. Order is "tokens" (default) or "phase"
type SportRounds struct {
	Order  string       `yaml:"order"`
	Bronze string       `yaml:"bronze"`
	Rounds []RoundEntry `yaml:"rounds"`
}

type RoundEntry struct {
	Name    string   `yaml:"name"`
	Rank    int      `yaml:"rank"`
	Stage   string   `yaml:"stage"`
	Aliases []string `yaml:"aliases"`
}

// LoadRules reads a rounds file and merges it over the default rules
// Preconditions: Receives the path to the rounds file. An empty path returns the defaults
// Postconditions: Returns the Rules, or an error if the file cannot be read or contains unknown values
func LoadRules(path string) (logic.Rules, error) {
	if path == "" {
		return logic.DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rounds file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes a rounds document and merges it over the default rules
func ParseRules(data []byte) (logic.Rules, error) {
	var file RoundsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rounds file: %w", err)
	}

	rules := logic.DefaultRules()
	for name, sr := range file.Sports {
		sport, ok := shared.ParseSport(name)
		if !ok {
			return nil, fmt.Errorf("rounds file: unknown sport '%s'", name)
		}
		current := rules.For(sport)

		if sr.Bronze != "" {
			bronze, ok := logic.ParseBronzeRule(sr.Bronze)
			if !ok {
				return nil, fmt.Errorf("rounds file: %s: unknown bronze rule '%s'", name, sr.Bronze)
			}
			current.Bronze = bronze
		}

		tokens, err := sr.tokenOrder(name)
		if err != nil {
			return nil, err
		}
		switch sr.Order {
		case "", "tokens":
			if tokens != nil {
				current.Order = *tokens
			} else if phase, ok := current.Order.(logic.PhaseRoundOrder); ok {
				// keep the default table when switching a phase sport back to tokens
				current.Order = phase.Fallback
			}
		case "phase":
			fallback := logic.NewTokenRoundOrder(logic.DefaultRoundTable())
			if tokens != nil {
				fallback = *tokens
			}
			current.Order = logic.PhaseRoundOrder{Fallback: fallback}
		default:
			return nil, fmt.Errorf("rounds file: %s: unknown order '%s'", name, sr.Order)
		}
		rules[sport] = current
	}
	return rules, nil
}

// tokenOrder builds the token table of a sport, nil when the file gives no rounds
func (sr SportRounds) tokenOrder(sport string) (*logic.TokenRoundOrder, error) {
	if len(sr.Rounds) == 0 {
		return nil, nil
	}
	entries := make([]logic.RoundEntry, 0, len(sr.Rounds))
	for _, r := range sr.Rounds {
		if r.Name == "" {
			return nil, fmt.Errorf("rounds file: %s: round without a name", sport)
		}
		stage, ok := logic.ParseStage(r.Stage)
		if !ok {
			return nil, fmt.Errorf("rounds file: %s: unknown stage '%s' for round '%s'", sport, r.Stage, r.Name)
		}
		entries = append(entries, logic.RoundEntry{Name: r.Name, Rank: r.Rank, Stage: stage, Aliases: r.Aliases})
	}
	order := logic.NewTokenRoundOrder(entries)
	return &order, nil
}

/* grouping.go
 * Contains the grouping engine: matches are bucketed by competition, then event, then round. Byes are removed from
 * the rendered buckets but still counted towards the bracket statistics of the event
 * Authors: Zachary Bower
 */

package logic

import "sports-results/api/shared"

// RankedBucket holds the matches of one round of one event, along with the medal and best round of the event
type RankedBucket struct {
	CompetitionID string
	EventCode     string
	Round         Round
	Matches       []shared.RawMatch
	Medal         shared.Medal
	BestRound     string
}

// EventGroup is one event (category) of a competition
type EventGroup struct {
	Code      string
	Name      string
	IsTeam    bool
	Buckets   []RankedBucket
	Medal     shared.Medal
	BestRound string
	// Matches counts rendered matches, Byes the bye matches removed from the buckets
	Matches       int
	Byes          int
	RoundsReached int
}

// CompetitionGroup is one competition. Expanded is set when any of its events won a medal
type CompetitionGroup struct {
	ID       string
	Name     string
	Date     string
	Events   []EventGroup
	Expanded bool
}

// GroupMatches buckets matches by competition, event and round
// Preconditions: Receives the (already filtered) matches, the sport rules and the selector for the tracked side.
// sel may be nil, in which case no medals are derived
// Postconditions: Returns competitions and events in first-seen order, rounds in ascending progression order.
// Events left without matches once byes are removed are dropped, as are competitions left without events
func GroupMatches(matches []shared.RawMatch, rules SportRules, sel SideSelector) []CompetitionGroup {
	type eventAcc struct {
		code    string
		name    string
		isTeam  bool
		matches []shared.RawMatch
	}
	type competitionAcc struct {
		id     string
		name   string
		date   string
		events []*eventAcc
		index  map[string]*eventAcc
	}

	var competitions []*competitionAcc
	compIndex := make(map[string]*competitionAcc)
	for _, m := range matches {
		comp, ok := compIndex[m.CompetitionID]
		if !ok {
			comp = &competitionAcc{id: m.CompetitionID, index: make(map[string]*eventAcc)}
			compIndex[m.CompetitionID] = comp
			competitions = append(competitions, comp)
		}
		if comp.name == "" {
			comp.name = m.Competition
		}
		if comp.date == "" {
			comp.date = m.Date
		}

		event, ok := comp.index[m.EventCode]
		if !ok {
			event = &eventAcc{code: m.EventCode}
			comp.index[m.EventCode] = event
			comp.events = append(comp.events, event)
		}
		if event.name == "" {
			event.name = m.Event
		}
		event.isTeam = event.isTeam || m.IsTeamEvent
		event.matches = append(event.matches, m)
	}

	var groups []CompetitionGroup
	for _, comp := range competitions {
		group := CompetitionGroup{ID: comp.id, Name: comp.name, Date: comp.date}
		if group.Name == "" {
			group.Name = comp.id
		}
		for _, acc := range comp.events {
			event, ok := buildEvent(comp.id, acc.code, acc.matches, rules, sel)
			if !ok {
				continue
			}
			event.Name = acc.name
			if event.Name == "" {
				event.Name = acc.code
			}
			event.IsTeam = acc.isTeam
			if event.Medal != shared.MedalNone {
				group.Expanded = true
			}
			group.Events = append(group.Events, event)
		}
		if len(group.Events) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// buildEvent sorts and buckets the matches of one event. ok is false when nothing is left to render
func buildEvent(competitionID, code string, matches []shared.RawMatch, rules SportRules, sel SideSelector) (EventGroup, bool) {
	event := EventGroup{Code: code}
	event.Medal, event.BestRound = DeriveMedal(matches, rules, sel)

	reached := make(map[string]bool)
	var played []shared.RawMatch
	for _, m := range matches {
		if sel == nil || sel.Side(m) != NoSide {
			reached[rules.Order.Resolve(m).Key] = true
		}
		if m.IsBye() {
			event.Byes++
			continue
		}
		played = append(played, m)
	}
	event.RoundsReached = len(reached)
	event.Matches = len(played)
	if len(played) == 0 {
		return event, false
	}

	for _, m := range SortByRound(played, rules.Order, false) {
		round := rules.Order.Resolve(m)
		last := len(event.Buckets) - 1
		if last < 0 || event.Buckets[last].Round.Key != round.Key {
			event.Buckets = append(event.Buckets, RankedBucket{
				CompetitionID: competitionID,
				EventCode:     code,
				Round:         round,
				Medal:         event.Medal,
				BestRound:     event.BestRound,
			})
			last++
		}
		event.Buckets[last].Matches = append(event.Buckets[last].Matches, m)
	}
	return event, true
}

// Flatten returns every rendered match of the groups, in display order
func Flatten(groups []CompetitionGroup) []shared.RawMatch {
	var matches []shared.RawMatch
	for _, g := range groups {
		for _, e := range g.Events {
			for _, b := range e.Buckets {
				matches = append(matches, b.Matches...)
			}
		}
	}
	return matches
}

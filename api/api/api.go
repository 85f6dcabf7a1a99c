/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, functions should
 * only be called from this file, not the sub packages for external, logic and format
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sports-results/api/external"
	"sports-results/api/format"
	"sports-results/api/logic"
	"sports-results/api/shared"
	"sports-results/api/store"

	"go.uber.org/zap"
)

// API provides methods for interacting with the result pipeline and its data layer
type API struct {
	Store   store.Interface
	Parser  external.DocumentParser
	Rules   logic.Rules
	Country string
	Logger  *zap.Logger
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(cfg Config) (*API, error) {
	if cfg.DBName == "" || cfg.MongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI are required")
	}

	s, err := store.NewStore(cfg.DBName, cfg.MongoURI, cfg.Fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:   s,
		Parser:  external.GoqueryParser{},
		Rules:   cfg.Rules,
		Country: cfg.Country,
		Logger:  cfg.Logger,
	}, nil
}

// ParseSport converts user input to a Sport, wrapping ErrUnknownSport when it is not recognised
func ParseSport(name string) (shared.Sport, error) {
	sport, ok := shared.ParseSport(name)
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownSport, name)
	}
	return sport, nil
}

// region extractors

// ExtractShooting runs the shooting adapter over a result page and formats the target country's rows.
// It returns the text block (NoResultsMessage when nothing matched), or ErrInvalidHTML if the page cannot be parsed.
func (a *API) ExtractShooting(html string) (string, error) {
	matches, err := external.ParseShootingResults(a.parser(), html)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidHTML, err)
	}
	return format.FormatShootingResults(logic.FilterByCountry(matches, a.country())), nil
}

// ExtractTableTennis runs the match card adapter over a page and formats the target country's matches by round.
func (a *API) ExtractTableTennis(html string) (string, error) {
	matches, err := external.ParseTableTennisCards(a.parser(), html)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidHTML, err)
	}
	return format.FormatTableTennisCards(logic.FilterByCountry(matches, a.country())), nil
}

// ExtractBadminton formats the target country's matches from a badminton match feed.
// It returns ErrInvalidJSON if the payload is not a JSON array of matches.
func (a *API) ExtractBadminton(data []byte) (string, error) {
	matches, err := external.ParseBadmintonMatches(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return format.FormatBadmintonResults(logic.FilterByCountry(matches, a.country()), a.country()), nil
}

// ExtractRecords groups structured match records by competition and event and renders the target country's
// results as a report. Used for archery, and for any sport whose feed uses the structured record shape.
func (a *API) ExtractRecords(sport shared.Sport, data []byte) (string, error) {
	records, err := external.ParseMatchRecords(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	view := a.countryView(sport, strings.ToUpper(string(sport)), external.RecordsToMatches(records, sport))
	return format.FormatResultsReport(view), nil
}

// Extract dispatches a raw payload to the extractor of the sport: shooting and table tennis take HTML, badminton
// takes its match feed and archery takes structured records. It returns ErrUnknownSport for anything else.
func (a *API) Extract(sport shared.Sport, payload []byte) (string, error) {
	switch sport {
	case shared.SportShooting:
		return a.ExtractShooting(string(payload))
	case shared.SportTableTennis:
		return a.ExtractTableTennis(string(payload))
	case shared.SportBadminton:
		return a.ExtractBadminton(payload)
	case shared.SportArchery:
		return a.ExtractRecords(sport, payload)
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnknownSport, sport)
}

// ScrapeShooting fetches (or reads from the page cache) a shooting result page and extracts it.
func (a *API) ScrapeShooting(ctx context.Context, url string) (string, error) {
	html, err := a.Store.GetPage(ctx, url)
	if err != nil {
		return "", err
	}
	a.logger().Info("scraped shooting results", zap.String("url", url), zap.Int("bytes", len(html)))
	return a.ExtractShooting(html)
}

// ScrapeTableTennis fetches (or reads from the page cache) a table tennis draw page and extracts it.
func (a *API) ScrapeTableTennis(ctx context.Context, url string) (string, error) {
	html, err := a.Store.GetPage(ctx, url)
	if err != nil {
		return "", err
	}
	a.logger().Info("scraped table tennis cards", zap.String("url", url), zap.Int("bytes", len(html)))
	return a.ExtractTableTennis(html)
}

// endregion

// region stored results

// ImportRecords parses structured match records and upserts them into the store.
// It returns the number of records written, or ErrInvalidJSON if the payload cannot be decoded.
func (a *API) ImportRecords(ctx context.Context, sport shared.Sport, data []byte) (int, error) {
	records, err := external.ParseMatchRecords(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	written, err := a.Store.StoreMatchRecords(ctx, sport, records)
	if err != nil {
		return 0, err
	}
	a.logger().Info("imported match records", zap.String("sport", string(sport)), zap.Int("records", written))
	return written, nil
}

// AthleteResults builds the result browser view for one athlete: every competition they took part in, grouped by
// event and round, with medals and aggregate statistics.
func (a *API) AthleteResults(ctx context.Context, sport shared.Sport, athleteID string) (format.ResultsView, error) {
	records, err := a.Store.FetchAthleteRecords(ctx, sport, athleteID)
	if err != nil {
		return format.ResultsView{}, err
	}
	matches := external.RecordsToMatches(records, sport)
	sel := logic.AthleteSelector{IDs: []string{athleteID}}
	groups := logic.GroupMatches(matches, a.rules().For(sport), sel)
	return format.BuildResultsView(athleteName(matches, sel, athleteID), groups, sel, true), nil
}

// AthleteReport returns AthleteResults as a text report.
func (a *API) AthleteReport(ctx context.Context, sport shared.Sport, athleteID string) (string, error) {
	view, err := a.AthleteResults(ctx, sport, athleteID)
	if err != nil {
		return "", err
	}
	return format.FormatResultsReport(view), nil
}

// CompetitionResults builds the view of the target country's matches in one competition.
func (a *API) CompetitionResults(ctx context.Context, sport shared.Sport, competitionID string) (format.ResultsView, error) {
	records, err := a.Store.FetchCompetitionRecords(ctx, sport, competitionID)
	if err != nil {
		return format.ResultsView{}, err
	}
	title := competitionID
	for _, r := range records {
		if r.Competition != "" {
			title = r.Competition
			break
		}
	}
	return a.countryView(sport, title, external.RecordsToMatches(records, sport)), nil
}

// CompetitionReport returns CompetitionResults as a text report.
func (a *API) CompetitionReport(ctx context.Context, sport shared.Sport, competitionID string) (string, error) {
	view, err := a.CompetitionResults(ctx, sport, competitionID)
	if err != nil {
		return "", err
	}
	return format.FormatResultsReport(view), nil
}

// SearchAthletes returns the athletes of a sport whose name fuzzy matches query, best match first.
func (a *API) SearchAthletes(ctx context.Context, sport shared.Sport, query string, limit int) ([]shared.Athlete, error) {
	athletes, err := a.Store.FetchAthletes(ctx, sport)
	if err != nil {
		return nil, err
	}
	return logic.SearchAthletes(query, athletes, limit), nil
}

// FindAthlete resolves a typed name to the best matching athlete, or ErrAthleteNotFound.
func (a *API) FindAthlete(ctx context.Context, sport shared.Sport, name string) (shared.Athlete, error) {
	found, err := a.SearchAthletes(ctx, sport, name, 1)
	if err != nil {
		return shared.Athlete{}, err
	}
	if len(found) == 0 {
		return shared.Athlete{}, fmt.Errorf("%w: '%s'", ErrAthleteNotFound, name)
	}
	return found[0], nil
}

// endregion

func (a *API) countryView(sport shared.Sport, title string, matches []shared.RawMatch) format.ResultsView {
	sel := logic.CountrySelector{Code: a.country()}
	filtered := logic.FilterByCountry(matches, a.country())
	groups := logic.GroupMatches(filtered, a.rules().For(sport), sel)
	return format.BuildResultsView(title, groups, sel, false)
}

// athleteName finds the tracked athlete's own name in the matches, falling back to the id
func athleteName(matches []shared.RawMatch, sel logic.AthleteSelector, athleteID string) string {
	for _, m := range matches {
		side := sel.Side(m)
		if side == logic.NoSide {
			continue
		}
		switch id := m.Competitors[side].Identity.(type) {
		case shared.Individual:
			return id.Athlete.Name
		case shared.Team:
			for _, member := range id.Members {
				if member.ID == athleteID {
					return member.Name
				}
			}
		}
	}
	return athleteID
}

func (a *API) parser() external.DocumentParser {
	if a.Parser == nil {
		return external.GoqueryParser{}
	}
	return a.Parser
}

func (a *API) rules() logic.Rules {
	if a.Rules == nil {
		return logic.DefaultRules()
	}
	return a.Rules
}

func (a *API) country() string {
	if a.Country == "" {
		return shared.DefaultCountry
	}
	return a.Country
}

func (a *API) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// UserMessage converts an error from this package into the message shown to users
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidJSON):
		return format.InvalidJSONMessage
	case errors.Is(err, ErrInvalidHTML):
		return format.InvalidHTMLMessage
	case errors.Is(err, ErrUnknownSport):
		return fmt.Sprintf("Unknown sport. Valid sports are: %s", sportList())
	case errors.Is(err, ErrAthleteNotFound):
		return "No athlete found with that name"
	}
	return "Something went wrong, please try again later"
}

func sportList() string {
	names := make([]string, 0, len(shared.Sports))
	for _, s := range shared.Sports {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

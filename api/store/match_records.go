/* match_records.go
 * Contains the methods for interacting with the match_records and athletes collections
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"sports-results/api/external"
	"sports-results/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function used to store structured match records in the db. Records are upserted by id so re-importing a feed
// updates existing matches rather than duplicating them. The athletes collection is updated from the competitors
// Preconditions: Receives context, the sport the records belong to and the records
// Postconditions: Returns the number of records written, or an error if the operation was unsuccessful
func (s *Store) StoreMatchRecords(ctx context.Context, sport shared.Sport, records []external.MatchRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		record.Sport = string(sport)
		if record.ID == "" {
			record.ID = RecordID(record)
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": record.ID}).
			SetReplacement(record).
			SetUpsert(true))
	}

	result, err := s.Collections.Matches.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to store match records: %w", err)
	}

	athletes := AthletesFromRecords(sport, records)
	if len(athletes) > 0 {
		athleteModels := make([]mongo.WriteModel, 0, len(athletes))
		for _, a := range athletes {
			athleteModels = append(athleteModels, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": a.Key}).
				SetReplacement(a).
				SetUpsert(true))
		}
		if _, err := s.Collections.Athletes.BulkWrite(ctx, athleteModels, options.BulkWrite().SetOrdered(false)); err != nil {
			return 0, fmt.Errorf("failed to store athletes: %w", err)
		}
	}

	return int(result.UpsertedCount + result.MatchedCount), nil
}

// Function to get every record of a sport in which the athlete competed, individually or as a team member
// Preconditions: Receives context, sport and athlete id
// Postconditions: Returns the records ordered by date then id (empty if none), or an error if it occurs
func (s *Store) FetchAthleteRecords(ctx context.Context, sport shared.Sport, athleteID string) ([]external.MatchRecord, error) {
	filter := bson.M{
		"sport": string(sport),
		"$or": bson.A{
			bson.M{"competitors.athlete.id": athleteID},
			bson.M{"competitors.members.id": athleteID},
		},
	}
	return s.findRecords(ctx, filter)
}

// Function to get every record of a competition
// Preconditions: Receives context, sport and competition id
// Postconditions: Returns the records ordered by date then id (empty if none), or an error if it occurs
func (s *Store) FetchCompetitionRecords(ctx context.Context, sport shared.Sport, competitionID string) ([]external.MatchRecord, error) {
	return s.findRecords(ctx, bson.M{"sport": string(sport), "competition_id": competitionID})
}

func (s *Store) findRecords(ctx context.Context, filter bson.M) ([]external.MatchRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.Collections.Matches.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching match records from db: %w", err)
	}
	defer cursor.Close(ctx)

	records := []external.MatchRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding match records: %w", err)
	}
	return records, nil
}

// Function to get the known athletes of a sport
// Preconditions: Receives context and sport
// Postconditions: Returns the athletes ordered by name, or an error if it occurs
func (s *Store) FetchAthletes(ctx context.Context, sport shared.Sport) ([]shared.Athlete, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.Collections.Athletes.Find(ctx, bson.M{"sport": string(sport)}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching athletes from db: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []AthleteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding athletes: %w", err)
	}

	athletes := make([]shared.Athlete, 0, len(docs))
	for _, d := range docs {
		athletes = append(athletes, d.ToAthlete())
	}
	return athletes, nil
}

// RecordID derives a stable id for records whose source has none, from the fields that identify a match
func RecordID(record external.MatchRecord) string {
	parts := []string{record.Sport, record.CompetitionID, record.EventCode, record.Round}
	if record.Phase != nil {
		parts = append(parts, fmt.Sprint(*record.Phase))
	}
	for _, c := range record.Competitors {
		switch {
		case c.Athlete != nil:
			parts = append(parts, c.Athlete.ID+c.Athlete.Name)
		case len(c.Members) > 0:
			for _, m := range c.Members {
				parts = append(parts, m.ID+m.Name)
			}
		default:
			parts = append(parts, c.Name+c.NOC)
		}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// AthletesFromRecords collects the distinct athletes with an id found in the records, ordered by key
func AthletesFromRecords(sport shared.Sport, records []external.MatchRecord) []AthleteDocument {
	found := make(map[string]AthleteDocument)
	add := func(a external.AthleteRecord) {
		if a.ID == "" {
			return
		}
		key := fmt.Sprintf("%s:%s", sport, a.ID)
		doc := AthleteDocument{Key: key, AthleteID: a.ID, Sport: string(sport), Name: a.Name, Country: strings.ToUpper(a.NOC)}
		// Keep a named entry over an anonymous one
		if existing, ok := found[key]; ok && existing.Name != "" && doc.Name == "" {
			return
		}
		found[key] = doc
	}

	for _, record := range records {
		for _, c := range record.Competitors {
			if c.Athlete != nil {
				add(*c.Athlete)
			}
			for _, m := range c.Members {
				add(m)
			}
		}
	}

	athletes := make([]AthleteDocument, 0, len(found))
	for _, a := range found {
		athletes = append(athletes, a)
	}
	sort.Slice(athletes, func(i, j int) bool {
		return athletes[i].Key < athletes[j].Key
	})
	return athletes
}

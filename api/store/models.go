/* models.go
 * This file contain the structs that relate to DB objects. Match records are stored using external.MatchRecord
 * directly, the documents here are derived from them or cached from the web
 * Authors: Zachary Bower
 */

package store

import "sports-results/api/shared"

// AthleteDocument is one athlete of one sport, derived from imported match records
type AthleteDocument struct {
	Key       string `bson:"_id"` // sport:athlete_id
	AthleteID string `bson:"athlete_id"`
	Sport     string `bson:"sport"`
	Name      string `bson:"name"`
	Country   string `bson:"country"`
}

// ToAthlete converts the document to the shared athlete shape
func (a AthleteDocument) ToAthlete() shared.Athlete {
	return shared.Athlete{ID: a.AthleteID, Name: a.Name, Country: a.Country}
}

// PageDocument is a cached HTML page. TTL is the unix time after which the page must be fetched again
type PageDocument struct {
	URL       string `bson:"_id"`
	Body      string `bson:"body"`
	TTL       int64  `bson:"ttl"`
	FetchedAt int64  `bson:"fetched_at"`
}

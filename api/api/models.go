/* models.go
 * This file contain the structs and errors that are used by api consumers
 * Authors: Zachary Bower
 */

package api

import (
	"errors"

	"sports-results/api/logic"
	"sports-results/api/store"

	"go.uber.org/zap"
)

// Config holds everything NewAPI needs. Rules and Logger may be nil, Country defaults to shared.DefaultCountry
type Config struct {
	DBName   string
	MongoURI string
	Country  string
	Rules    logic.Rules
	Fetcher  store.PageFetcher
	Logger   *zap.Logger
}

var (
	ErrInvalidJSON     = errors.New("invalid json payload")
	ErrInvalidHTML     = errors.New("invalid html payload")
	ErrUnknownSport    = errors.New("unknown sport")
	ErrAthleteNotFound = errors.New("athlete not found")
)

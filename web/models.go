/* models.go
 * Contains the configuration and response types of the HTTP server
 * Authors: Zachary Bower
 */

package web

import (
	"sports-results/api/api"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	Logger      *zap.Logger
	CORSOrigins []string
}

// Server serves the result pipeline over HTTP
type Server struct {
	api     *api.API
	logger  *zap.Logger
	metrics *Metrics
	router  chi.Router
}

// ErrorResponse is the JSON body of every non 2xx response. Message is safe to show to users
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ImportResponse is returned by the import endpoint
type ImportResponse struct {
	Sport   string `json:"sport"`
	Written int    `json:"written"`
}

// ExtractResponse is returned by the extract endpoint when JSON is requested
type ExtractResponse struct {
	Sport  string `json:"sport"`
	Result string `json:"result"`
}

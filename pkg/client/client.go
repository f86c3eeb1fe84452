// Package client fetches the employee directory from its remote JSON
// endpoint and classifies every failure.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Sternrassler/employee-directory/pkg/directory"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultEndpoint serves the public members list.
const DefaultEndpoint = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// Prometheus metrics for directory fetches.
var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_fetch_total",
		Help: "Total directory fetches by outcome",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "directory_fetch_duration_seconds",
		Help:    "Directory fetch duration in seconds, including body decode",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_fetch_errors_total",
		Help: "Total directory fetch errors by class",
	}, []string{"class"})
)

// Client issues the directory request.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Endpoint is the absolute URL of the JSON array of records.
	Endpoint string `validate:"required,url"`

	// UserAgent header sent with the request.
	UserAgent string `validate:"required"`
}

// DefaultConfig returns a configuration pointing at DefaultEndpoint.
func DefaultConfig(userAgent string) Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: userAgent,
	}
}

var validate = validator.New()

// New creates a directory client.
func New(cfg Config) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return &Client{
		// No timeout: the fetch lives as long as its context.
		httpClient: &http.Client{},
		config:     cfg,
		logger:     log.With().Str("component", "directory-client").Logger(),
	}, nil
}

// Fetch performs the single GET and decodes the body into records.
// Every error it returns is a *FetchError.
func (c *Client) Fetch(ctx context.Context) ([]directory.Record, error) {
	startTime := time.Now()
	defer func() {
		fetchDuration.Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint, nil)
	if err != nil {
		return nil, c.fail(&FetchError{Class: ErrorClassNetwork, Message: "create request", Err: err})
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", c.config.Endpoint).
		Msg("Fetching directory")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(&FetchError{Class: ErrorClassNetwork, Message: "request failed", Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&FetchError{
			Class:      ErrorClassHTTP,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		})
	}

	records, err := directory.Decode(resp.Body)
	if err != nil {
		return nil, c.fail(&FetchError{
			Class:      ErrorClassParse,
			StatusCode: resp.StatusCode,
			Message:    "decode body",
			Err:        err,
		})
	}

	fetchTotal.WithLabelValues("success").Inc()
	c.logger.Info().
		Str("endpoint", c.config.Endpoint).
		Int("records", len(records)).
		Dur("duration", time.Since(startTime)).
		Msg("Directory fetched")

	return records, nil
}

// fail records metrics and a warning for err and returns it unchanged.
func (c *Client) fail(err *FetchError) error {
	fetchTotal.WithLabelValues("failure").Inc()
	fetchErrorsTotal.WithLabelValues(string(err.Class)).Inc()

	c.logger.Warn().
		Err(err).
		Str("endpoint", c.config.Endpoint).
		Int("status", err.StatusCode).
		Str("error_class", string(err.Class)).
		Msg("Directory fetch failed")

	return err
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

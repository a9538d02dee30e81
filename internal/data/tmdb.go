package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/devnitht02/top-movies/internal/biz"
	"github.com/devnitht02/top-movies/internal/conf"
	"github.com/devnitht02/top-movies/internal/metrics"

	"github.com/go-kratos/kratos/v2/log"
)

const (
	endpointSearch = "search"
	endpointDetail = "detail"
)

// errStatusNotFound marks a 404 from the remote API. Only the detail endpoint
// treats it as a title that does not exist.
var errStatusNotFound = errors.New("remote returned 404")

type tmdbClient struct {
	client       *http.Client
	searchURL    string
	detailURL    string
	imageBaseURL string
	apiKey       string
	language     string
	metrics      *metrics.Metrics
	log          *log.Helper
}

// NewTMDBClient creates a client for The Movie Database search and detail endpoints
func NewTMDBClient(c *conf.TMDB, m *metrics.Metrics, logger log.Logger) biz.MovieSearcher {
	return &tmdbClient{
		client: &http.Client{
			Timeout: c.Timeout.AsDuration(),
		},
		searchURL:    c.SearchUrl,
		detailURL:    strings.TrimRight(c.DetailUrl, "/"),
		imageBaseURL: c.ImageBaseUrl,
		apiKey:       c.ApiKey,
		language:     c.Language,
		metrics:      m,
		log:          log.NewHelper(logger),
	}
}

// SearchByTitle returns the remote search results in the order the API sends them
func (c *tmdbClient) SearchByTitle(ctx context.Context, title string) ([]*biz.Candidate, error) {
	start := time.Now()

	var response struct {
		Results *[]*biz.Candidate `json:"results"`
	}
	err := c.getJSON(ctx, c.searchURL, url.Values{"query": {title}}, &response)
	if err == nil && response.Results == nil {
		err = fmt.Errorf("%w: search response has no results field", biz.ErrRemoteUnavailable)
	}
	if err != nil {
		c.observe(endpointSearch, err, start)
		c.log.WithContext(ctx).Warnf("movie search for '%s' failed: %v", title, err)
		return nil, err
	}

	c.observe(endpointSearch, nil, start)
	return *response.Results, nil
}

// FetchDetail resolves one remote id to the fields of a new catalog entry
func (c *tmdbClient) FetchDetail(ctx context.Context, remoteID int64) (*biz.Detail, error) {
	start := time.Now()

	var response struct {
		ID          int64   `json:"id"`
		Title       *string `json:"title"`
		ReleaseDate string  `json:"release_date"`
		Overview    string  `json:"overview"`
		PosterPath  *string `json:"poster_path"`
	}
	endpoint := c.detailURL + "/" + strconv.FormatInt(remoteID, 10)
	err := c.getJSON(ctx, endpoint, url.Values{"language": {c.language}}, &response)
	if errors.Is(err, errStatusNotFound) {
		err = fmt.Errorf("%w: movie %d: %v", biz.ErrRemoteDataIncomplete, remoteID, errStatusNotFound)
	}
	if err == nil && response.Title == nil {
		err = fmt.Errorf("%w: movie %d", biz.ErrRemoteDataIncomplete, remoteID)
	}
	if err != nil {
		c.observe(endpointDetail, err, start)
		c.log.WithContext(ctx).Warnf("movie detail for %d failed: %v", remoteID, err)
		return nil, err
	}
	c.observe(endpointDetail, nil, start)

	detail := &biz.Detail{
		RemoteID:    remoteID,
		Title:       *response.Title,
		Year:        parseReleaseYear(response.ReleaseDate),
		Description: response.Overview,
	}
	if response.PosterPath != nil && *response.PosterPath != "" {
		detail.ImageURL = c.imageBaseURL + *response.PosterPath
	}
	return detail, nil
}

// getJSON performs an authenticated GET and decodes a 2xx body into out.
// Every failure wraps biz.ErrRemoteUnavailable; a 404 also wraps errStatusNotFound.
func (c *tmdbClient) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: API key not configured", biz.ErrRemoteUnavailable)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: invalid endpoint %q: %v", biz.ErrRemoteUnavailable, endpoint, err)
	}
	query := u.Query()
	query.Set("api_key", c.apiKey)
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", biz.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", biz.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", biz.ErrRemoteUnavailable, errStatusNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status code: %d", biz.ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", biz.ErrRemoteUnavailable, err)
	}
	return nil
}

func (c *tmdbClient) observe(endpoint string, err error, start time.Time) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, biz.ErrRemoteDataIncomplete):
		outcome = "incomplete"
	default:
		outcome = "unavailable"
	}
	c.metrics.ObserveRemote(endpoint, outcome, time.Since(start))
}

// parseReleaseYear takes the part of a "YYYY-MM-DD" date before the first
// dash. Missing or malformed dates yield 0.
func parseReleaseYear(releaseDate string) int {
	yearPart, _, _ := strings.Cut(releaseDate, "-")
	year, err := strconv.Atoi(strings.TrimSpace(yearPart))
	if err != nil || year < 0 {
		return 0
	}
	return year
}

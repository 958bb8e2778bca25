// Package tmdb adapts TMDB's REST API to the metadata.Provider contract.
// Like pkg/indexer/prowlarr, this is a hand-written net/http client rather
// than one generated from TMDB's OpenAPI schema — that schema isn't
// vendored into this module.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/reelforge/reelforge/pkg/metadata"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Config holds the options for constructing a Client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// responseCacheTTL bounds how long a TMDB response is served from memory.
// Metadata changes rarely; the cache exists so a refresh pass over a large
// library doesn't re-fetch the same collection/credits payloads within one
// worker tick.
const responseCacheTTL = 5 * time.Minute

// Client talks to TMDB's v3 REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *gocache.Cache
}

var _ metadata.Provider = (*Client)(nil)

// New builds a Client from cfg, defaulting BaseURL to TMDB's production
// host and the HTTP client's timeout the way pkg/indexer/prowlarr does.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("tmdb: api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		cache:   gocache.New(responseCacheTTL, 2*responseCacheTTL),
	}, nil
}

// movieDetailsResponse mirrors TMDB's /movie/{id} response, trimmed to the
// fields metadata.Movie needs.
type movieDetailsResponse struct {
	ID                  int32    `json:"id"`
	ImdbID              string   `json:"imdb_id"`
	Title               string   `json:"title"`
	OriginalTitle       string   `json:"original_title"`
	Overview            string   `json:"overview"`
	ReleaseDate         string   `json:"release_date"`
	Runtime             int32    `json:"runtime"`
	PosterPath          string   `json:"poster_path"`
	BackdropPath        string   `json:"backdrop_path"`
	Status              string   `json:"status"`
	VoteAverage         float64  `json:"vote_average"`
	BelongsToCollection *struct {
		ID int32 `json:"id"`
	} `json:"belongs_to_collection"`
}

func (m movieDetailsResponse) year() int32 {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	var year int32
	_, _ = fmt.Sscanf(m.ReleaseDate[:4], "%d", &year)
	return year
}

type releaseDatesResponse struct {
	Results []struct {
		Iso31661     string `json:"iso_3166_1"`
		ReleaseDates []struct {
			Type          int    `json:"type"` // 3=theatrical, 4=digital, 5=physical
			ReleaseDate   string `json:"release_date"`
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

// releaseDateTypes mirror TMDB's release_dates.type enum.
const (
	releaseTypeTheatrical = 3
	releaseTypeDigital    = 4
	releaseTypePhysical   = 5
)

type creditsResponse struct {
	Cast []struct {
		ID    int32 `json:"id"`
		Order int   `json:"order"`
	} `json:"cast"`
	Crew []struct {
		ID   int32  `json:"id"`
		Job  string `json:"job"`
	} `json:"crew"`
}

func (c creditsResponse) toCredits() metadata.Credits {
	var credits metadata.Credits
	for _, crew := range c.Crew {
		switch crew.Job {
		case "Director":
			credits.DirectorIDs = append(credits.DirectorIDs, crew.ID)
		case "Writer", "Screenplay":
			credits.WriterIDs = append(credits.WriterIDs, crew.ID)
		}
	}

	cast := append([]struct {
		ID    int32 `json:"id"`
		Order int   `json:"order"`
	}{}, c.Cast...)
	for i := 0; i < len(cast) && i < 5; i++ {
		credits.TopCastIDs = append(credits.TopCastIDs, cast[i].ID)
	}
	return credits
}

// GetMovie fetches a movie's core details, release-date trio, and credits,
// fanning out across TMDB's three separate endpoints.
func (c *Client) GetMovie(ctx context.Context, tmdbID int32) (*metadata.Movie, error) {
	var details movieDetailsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), nil, &details); err != nil {
		return nil, fmt.Errorf("tmdb movie details: %w", err)
	}

	var releaseDates releaseDatesResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/release_dates", tmdbID), nil, &releaseDates); err != nil {
		return nil, fmt.Errorf("tmdb release dates: %w", err)
	}

	var credits creditsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", tmdbID), nil, &credits); err != nil {
		return nil, fmt.Errorf("tmdb credits: %w", err)
	}

	movie := &metadata.Movie{
		TmdbID:        details.ID,
		ImdbID:        details.ImdbID,
		Title:         details.Title,
		OriginalTitle: details.OriginalTitle,
		Year:          details.year(),
		Overview:      details.Overview,
		Runtime:       details.Runtime,
		PosterPath:    details.PosterPath,
		BackdropPath:  details.BackdropPath,
		Status:        details.Status,
		VoteAverage:   details.VoteAverage,
		Credits:       credits.toCredits(),
	}
	if details.BelongsToCollection != nil {
		id := details.BelongsToCollection.ID
		movie.CollectionTmdbID = &id
	}

	applyReleaseDates(movie, releaseDates)
	return movie, nil
}

// applyReleaseDates picks the US release window when present, falling back
// to the first country TMDB reports, since a self-hosted instance has no
// region preference configured.
func applyReleaseDates(movie *metadata.Movie, resp releaseDatesResponse) {
	results := resp.Results
	if len(results) == 0 {
		return
	}

	pick := results[0]
	for _, r := range results {
		if r.Iso31661 == "US" {
			pick = r
			break
		}
	}

	for _, rd := range pick.ReleaseDates {
		switch rd.Type {
		case releaseTypeTheatrical:
			movie.TheatricalDate = rd.ReleaseDate
			if rd.Certification != "" {
				movie.Certification = rd.Certification
			}
		case releaseTypeDigital:
			movie.DigitalDate = rd.ReleaseDate
		case releaseTypePhysical:
			movie.PhysicalDate = rd.ReleaseDate
		}
	}
}

type seriesDetailsResponse struct {
	ID               int32    `json:"id"`
	Name             string   `json:"name"`
	Overview         string   `json:"overview"`
	FirstAirDate     string   `json:"first_air_date"`
	Status           string   `json:"status"`
	PosterPath       string   `json:"poster_path"`
	NumberOfSeasons  int32    `json:"number_of_seasons"`
	NumberOfEpisodes int32    `json:"number_of_episodes"`
	Networks         []struct {
		Name string `json:"name"`
	} `json:"networks"`
	ExternalIDs struct {
		TvdbID int32  `json:"tvdb_id"`
		ImdbID string `json:"imdb_id"`
	} `json:"external_ids"`
}

func (s seriesDetailsResponse) year() int32 {
	if len(s.FirstAirDate) < 4 {
		return 0
	}
	var year int32
	_, _ = fmt.Sscanf(s.FirstAirDate[:4], "%d", &year)
	return year
}

// GetSeries fetches a series' core details, appending external_ids via
// TMDB's append_to_response mechanism to get the tvdb id in one call.
func (c *Client) GetSeries(ctx context.Context, tmdbID int32) (*metadata.Series, error) {
	q := url.Values{"append_to_response": {"external_ids"}}

	var details seriesDetailsResponse
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), q, &details); err != nil {
		return nil, fmt.Errorf("tmdb series details: %w", err)
	}

	network := ""
	if len(details.Networks) > 0 {
		network = details.Networks[0].Name
	}

	return &metadata.Series{
		TmdbID:           details.ID,
		TvdbID:           details.ExternalIDs.TvdbID,
		ImdbID:           details.ExternalIDs.ImdbID,
		Title:            details.Name,
		Year:             details.year(),
		Overview:         details.Overview,
		Network:          network,
		Status:           details.Status,
		PosterPath:       details.PosterPath,
		NumberOfSeasons:  details.NumberOfSeasons,
		NumberOfEpisodes: details.NumberOfEpisodes,
	}, nil
}

type seasonDetailsResponse struct {
	SeasonNumber int32      `json:"season_number"`
	Overview     string     `json:"overview"`
	PosterPath   string     `json:"poster_path"`
	Episodes     []episodeResponse `json:"episodes"`
}

type episodeResponse struct {
	EpisodeNumber int32  `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	Runtime       int32  `json:"runtime"`
}

// GetSeason fetches one season and its episode list.
func (c *Client) GetSeason(ctx context.Context, seriesTmdbID int32, seasonNumber int32) (*metadata.Season, error) {
	var details seasonDetailsResponse
	path := fmt.Sprintf("/tv/%d/season/%d", seriesTmdbID, seasonNumber)
	if err := c.get(ctx, path, nil, &details); err != nil {
		return nil, fmt.Errorf("tmdb season details: %w", err)
	}

	episodes := make([]metadata.Episode, 0, len(details.Episodes))
	for _, e := range details.Episodes {
		episodes = append(episodes, metadata.Episode{
			EpisodeNumber: e.EpisodeNumber,
			Title:         e.Name,
			Overview:      e.Overview,
			AirDate:       e.AirDate,
			Runtime:       e.Runtime,
		})
	}

	return &metadata.Season{
		SeasonNumber: details.SeasonNumber,
		Overview:     details.Overview,
		PosterPath:   details.PosterPath,
		Episodes:     episodes,
	}, nil
}

type findResponse struct {
	MovieResults []struct {
		ID int32 `json:"id"`
	} `json:"movie_results"`
	TvResults []struct {
		ID int32 `json:"id"`
	} `json:"tv_results"`
}

// FindByExternalID resolves an IMDb id to a TMDB movie or series, then
// fetches its full details. A nil, nil, nil result means TMDB had no match.
func (c *Client) FindByExternalID(ctx context.Context, externalID string, kind metadata.ExternalIDKind) (*metadata.Movie, *metadata.Series, error) {
	q := url.Values{"external_source": {"imdb_id"}}

	var found findResponse
	if err := c.get(ctx, fmt.Sprintf("/find/%s", externalID), q, &found); err != nil {
		return nil, nil, fmt.Errorf("tmdb find: %w", err)
	}

	switch kind {
	case metadata.KindSeries:
		if len(found.TvResults) == 0 {
			return nil, nil, nil
		}
		series, err := c.GetSeries(ctx, found.TvResults[0].ID)
		return nil, series, err
	default:
		if len(found.MovieResults) == 0 {
			return nil, nil, nil
		}
		movie, err := c.GetMovie(ctx, found.MovieResults[0].ID)
		return movie, nil, err
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	cacheKey := endpoint
	if query != nil {
		cacheKey += "?" + query.Encode()
	}
	if cached, ok := c.cache.Get(cacheKey); ok {
		return json.Unmarshal(cached.([]byte), out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.cache.Set(cacheKey, body, gocache.DefaultExpiration)

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

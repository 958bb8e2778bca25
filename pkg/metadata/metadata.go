// Package metadata defines the capability contract for an external
// metadata source (TMDB) used to enrich catalog entries on creation and to
// feed the related-media ranking with credit data the store itself
// doesn't persist.
package metadata

import "context"

// ExternalIDKind narrows findByExternalId to a movie or a series lookup.
type ExternalIDKind string

const (
	KindMovie  ExternalIDKind = "movie"
	KindSeries ExternalIDKind = "series"
)

// Movie is the subset of a metadata provider's movie response the catalog
// needs to enrich a row it already created from a search result or an
// import-list item.
type Movie struct {
	TmdbID           int32
	ImdbID           string
	Title            string
	OriginalTitle    string
	Year             int32
	Overview         string
	Runtime          int32
	TheatricalDate   string
	DigitalDate      string
	PhysicalDate     string
	PosterPath       string
	BackdropPath     string
	Status           string
	Certification    string
	VoteAverage      float64
	CollectionTmdbID *int32
	Credits          Credits
}

// Series is the subset of a metadata provider's series response the
// catalog needs.
type Series struct {
	TvdbID           int32
	TmdbID           int32
	ImdbID           string
	Title            string
	Year             int32
	Overview         string
	Network          string
	Status           string
	PosterPath       string
	NumberOfSeasons  int32
	NumberOfEpisodes int32
}

// Season is one series season with its episode list, used to seed a
// series' season/episode rows on import.
type Season struct {
	SeasonNumber int32
	Overview     string
	PosterPath   string
	Episodes     []Episode
}

// Episode is one episode within a fetched season.
type Episode struct {
	EpisodeNumber int32
	Title         string
	Overview      string
	AirDate       string
	Runtime       int32
}

// Credits is the director/writer/top-cast breakdown the related-media
// ranking scores against (see pkg/catalog.RelatedCandidate).
type Credits struct {
	DirectorIDs []int32
	WriterIDs   []int32
	TopCastIDs  []int32 // top-5 billed, in billing order
}

// Provider is the capability an external metadata source exposes.
type Provider interface {
	GetMovie(ctx context.Context, tmdbID int32) (*Movie, error)
	GetSeries(ctx context.Context, tmdbID int32) (*Series, error)
	GetSeason(ctx context.Context, seriesTmdbID int32, seasonNumber int32) (*Season, error)
	FindByExternalID(ctx context.Context, externalID string, kind ExternalIDKind) (*Movie, *Series, error)
}

// Package backup implements the JSON export/restore contract exposed at
// /system/backup: a snapshot keyed by table name plus a _meta array
// holding one {table, rows} entry per exported table (no export time or
// format version is recorded). Restore recreates config tables before the
// movies and series that reference them; seasons and episodes are not
// part of the snapshot.
package backup

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// TableMeta describes one exported table.
type TableMeta struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// Snapshot is the full backup document.
type Snapshot struct {
	Meta                 []TableMeta                  `json:"_meta"`
	Movies               []*model.Movie               `json:"movies,omitempty"`
	Series               []*model.Series              `json:"series,omitempty"`
	QualityDefinitions   []*model.QualityDefinition   `json:"quality_definitions,omitempty"`
	QualityProfiles      []*model.QualityProfile      `json:"quality_profiles,omitempty"`
	ImportLists          []store.ImportListConfig     `json:"import_lists,omitempty"`
	IndexerConfigs       []store.IndexerConfig        `json:"indexer_configs,omitempty"`
	DownloadClientConfig []store.DownloadClientConfig `json:"download_client_configs,omitempty"`
	NamingConfig         *store.NamingConfig          `json:"naming_config,omitempty"`
}

// Export builds a full Snapshot from s. Episodes are omitted from the
// document, and Restore recreates series rows only, not their episodes.
func Export(ctx context.Context, s store.Store) (Snapshot, error) {
	var snap Snapshot

	movies, err := s.ListMovies(ctx)
	if err != nil {
		return snap, fmt.Errorf("list movies: %w", err)
	}
	snap.Movies = movies

	series, err := s.ListSeries(ctx)
	if err != nil {
		return snap, fmt.Errorf("list series: %w", err)
	}
	snap.Series = series

	qualityDefs, err := s.ListQualityDefinitions(ctx)
	if err != nil {
		return snap, fmt.Errorf("list quality definitions: %w", err)
	}
	snap.QualityDefinitions = qualityDefs

	qualityProfiles, err := s.ListQualityProfiles(ctx)
	if err != nil {
		return snap, fmt.Errorf("list quality profiles: %w", err)
	}
	snap.QualityProfiles = qualityProfiles

	importLists, err := s.ListImportLists(ctx)
	if err != nil {
		return snap, fmt.Errorf("list import lists: %w", err)
	}
	snap.ImportLists = importLists

	indexers, err := s.ListIndexerConfigs(ctx)
	if err != nil {
		return snap, fmt.Errorf("list indexer configs: %w", err)
	}
	snap.IndexerConfigs = indexers

	clients, err := s.ListDownloadClientConfigs(ctx)
	if err != nil {
		return snap, fmt.Errorf("list download client configs: %w", err)
	}
	snap.DownloadClientConfig = clients

	naming, err := s.GetNamingConfig(ctx)
	if err != nil {
		return snap, fmt.Errorf("get naming config: %w", err)
	}
	snap.NamingConfig = &naming

	snap.Meta = []TableMeta{
		{Table: "movie", Rows: len(snap.Movies)},
		{Table: "series", Rows: len(snap.Series)},
		{Table: "quality_definition", Rows: len(snap.QualityDefinitions)},
		{Table: "quality_profile", Rows: len(snap.QualityProfiles)},
		{Table: "import_list", Rows: len(snap.ImportLists)},
		{Table: "indexer_config", Rows: len(snap.IndexerConfigs)},
		{Table: "download_client_config", Rows: len(snap.DownloadClientConfig)},
		{Table: "naming_config", Rows: 1},
	}
	return snap, nil
}

// Preview returns only snap's _meta: row counts per table, so an operator
// can sanity-check a backup's shape before committing to a full restore.
func Preview(ctx context.Context, s store.Store) ([]TableMeta, error) {
	snap, err := Export(ctx, s)
	if err != nil {
		return nil, err
	}
	return snap.Meta, nil
}

// Restore replaces s's config tables and catalog rows with the contents of
// snap. Config tables are restored first since movies/series carry
// quality_profile_id foreign keys into them.
func Restore(ctx context.Context, s store.Store, snap Snapshot) error {
	for _, d := range snap.QualityDefinitions {
		if _, err := s.CreateQualityDefinition(ctx, *d); err != nil {
			return fmt.Errorf("restore quality definition %q: %w", d.Name, err)
		}
	}
	for _, p := range snap.QualityProfiles {
		if _, err := s.CreateQualityProfile(ctx, *p); err != nil {
			return fmt.Errorf("restore quality profile %q: %w", p.Name, err)
		}
	}
	for _, c := range snap.IndexerConfigs {
		if _, err := s.CreateIndexerConfig(ctx, c); err != nil {
			return fmt.Errorf("restore indexer config %q: %w", c.Name, err)
		}
	}
	for _, c := range snap.DownloadClientConfig {
		if _, err := s.CreateDownloadClientConfig(ctx, c); err != nil {
			return fmt.Errorf("restore download client config %q: %w", c.Name, err)
		}
	}
	for _, l := range snap.ImportLists {
		if _, err := s.CreateImportList(ctx, l); err != nil {
			return fmt.Errorf("restore import list %q: %w", l.ListID, err)
		}
	}
	if snap.NamingConfig != nil {
		if err := s.UpdateNamingConfig(ctx, *snap.NamingConfig); err != nil {
			return fmt.Errorf("restore naming config: %w", err)
		}
	}
	for _, m := range snap.Movies {
		if _, err := s.CreateMovie(ctx, *m); err != nil {
			return fmt.Errorf("restore movie %q: %w", m.Title, err)
		}
	}
	for _, sr := range snap.Series {
		if _, err := s.CreateSeries(ctx, *sr); err != nil {
			return fmt.Errorf("restore series %q: %w", sr.Title, err)
		}
	}
	return nil
}

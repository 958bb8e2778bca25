package sqlite

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// GetNamingConfig reads the singleton naming configuration row.
func (s *SQLite) GetNamingConfig(ctx context.Context) (store.NamingConfig, error) {
	const query = `
		SELECT movie_file_format, movie_folder_format, standard_episode_format, daily_episode_format,
			anime_episode_format, series_folder_format, season_folder_format, specials_folder_format,
			colon_replacement, multi_episode_style
		FROM naming_config WHERE id = 1
	`

	s.mu.Lock()
	row := s.rawDB(ctx).QueryRowContext(ctx, query)
	s.mu.Unlock()

	var c store.NamingConfig
	err := row.Scan(
		&c.MovieFileFormat, &c.MovieFolderFormat, &c.StandardEpisodeFormat, &c.DailyEpisodeFormat,
		&c.AnimeEpisodeFormat, &c.SeriesFolderFormat, &c.SeasonFolderFormat, &c.SpecialsFolderFormat,
		&c.ColonReplacement, &c.MultiEpisodeStyle,
	)
	if err != nil {
		return store.NamingConfig{}, fmt.Errorf("get naming config: %w", err)
	}
	return c, nil
}

// UpdateNamingConfig replaces the singleton naming configuration row.
func (s *SQLite) UpdateNamingConfig(ctx context.Context, c store.NamingConfig) error {
	const query = `
		UPDATE naming_config SET
			movie_file_format = ?, movie_folder_format = ?, standard_episode_format = ?,
			daily_episode_format = ?, anime_episode_format = ?, series_folder_format = ?,
			season_folder_format = ?, specials_folder_format = ?, colon_replacement = ?,
			multi_episode_style = ?
		WHERE id = 1
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query,
		c.MovieFileFormat, c.MovieFolderFormat, c.StandardEpisodeFormat, c.DailyEpisodeFormat,
		c.AnimeEpisodeFormat, c.SeriesFolderFormat, c.SeasonFolderFormat, c.SpecialsFolderFormat,
		c.ColonReplacement, c.MultiEpisodeStyle,
	)
	if err != nil {
		return fmt.Errorf("update naming config: %w", err)
	}
	return nil
}

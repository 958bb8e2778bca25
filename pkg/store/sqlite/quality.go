package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/table"
)

// CreateQualityDefinition stores a new named quality weight/size entry.
func (s *SQLite) CreateQualityDefinition(ctx context.Context, d model.QualityDefinition) (int64, error) {
	stmt := table.QualityDefinition.
		INSERT(table.QualityDefinition.MutableColumns).
		MODEL(d).
		RETURNING(table.QualityDefinition.ID)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("create quality definition: %w", err)
	}
	return result.LastInsertId()
}

// ListQualityDefinitions lists every quality definition ordered by weight.
func (s *SQLite) ListQualityDefinitions(ctx context.Context) ([]*model.QualityDefinition, error) {
	defs := make([]*model.QualityDefinition, 0)
	stmt := table.QualityDefinition.
		SELECT(table.QualityDefinition.AllColumns).
		FROM(table.QualityDefinition).
		ORDER_BY(table.QualityDefinition.Weight.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &defs)
	if err != nil {
		return nil, fmt.Errorf("list quality definitions: %w", err)
	}
	return defs, nil
}

// UpdateQualityDefinition replaces a quality definition's mutable columns.
func (s *SQLite) UpdateQualityDefinition(ctx context.Context, d model.QualityDefinition) error {
	stmt := table.QualityDefinition.
		UPDATE(table.QualityDefinition.MutableColumns).
		MODEL(d).
		WHERE(table.QualityDefinition.ID.EQ(sqlite.Int64(int64(d.ID))))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("update quality definition %d: %w", d.ID, err)
	}
	return nil
}

// DeleteQualityDefinition removes a quality definition by id.
func (s *SQLite) DeleteQualityDefinition(ctx context.Context, id int64) error {
	stmt := table.QualityDefinition.DELETE().WHERE(table.QualityDefinition.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("delete quality definition %d: %w", id, err)
	}
	return nil
}

// CreateQualityProfile stores a new quality profile.
func (s *SQLite) CreateQualityProfile(ctx context.Context, p model.QualityProfile) (int64, error) {
	stmt := table.QualityProfile.
		INSERT(table.QualityProfile.MutableColumns).
		MODEL(p).
		RETURNING(table.QualityProfile.ID)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("create quality profile: %w", err)
	}
	return result.LastInsertId()
}

// GetQualityProfile fetches a quality profile by id.
func (s *SQLite) GetQualityProfile(ctx context.Context, id int64) (*model.QualityProfile, error) {
	stmt := table.QualityProfile.
		SELECT(table.QualityProfile.AllColumns).
		FROM(table.QualityProfile).
		WHERE(table.QualityProfile.ID.EQ(sqlite.Int64(id)))

	var p model.QualityProfile
	err := stmt.QueryContext(ctx, s.jetDB(ctx), &p)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get quality profile %d: %w", id, err)
	}
	return &p, nil
}

// ListQualityProfiles lists every quality profile.
func (s *SQLite) ListQualityProfiles(ctx context.Context) ([]*model.QualityProfile, error) {
	profiles := make([]*model.QualityProfile, 0)
	stmt := table.QualityProfile.
		SELECT(table.QualityProfile.AllColumns).
		FROM(table.QualityProfile).
		ORDER_BY(table.QualityProfile.Name.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &profiles)
	if err != nil {
		return nil, fmt.Errorf("list quality profiles: %w", err)
	}
	return profiles, nil
}

// UpdateQualityProfile replaces a quality profile's mutable columns.
func (s *SQLite) UpdateQualityProfile(ctx context.Context, p model.QualityProfile) error {
	stmt := table.QualityProfile.
		UPDATE(table.QualityProfile.MutableColumns).
		MODEL(p).
		WHERE(table.QualityProfile.ID.EQ(sqlite.Int64(int64(p.ID))))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("update quality profile %d: %w", p.ID, err)
	}
	return nil
}

// DeleteQualityProfile removes a quality profile by id; its items cascade.
func (s *SQLite) DeleteQualityProfile(ctx context.Context, id int64) error {
	stmt := table.QualityProfile.DELETE().WHERE(table.QualityProfile.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("delete quality profile %d: %w", id, err)
	}
	return nil
}

// CreateQualityProfileItem adds one allowed/disallowed quality row to a profile.
func (s *SQLite) CreateQualityProfileItem(ctx context.Context, item model.QualityProfileItem) (int64, error) {
	stmt := table.QualityProfileItem.
		INSERT(table.QualityProfileItem.MutableColumns).
		MODEL(item).
		RETURNING(table.QualityProfileItem.ID)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("create quality profile item: %w", err)
	}
	return result.LastInsertId()
}

// ListQualityProfileItems lists the quality rows belonging to a profile,
// ordered the way they were configured.
func (s *SQLite) ListQualityProfileItems(ctx context.Context, profileID int64) ([]*model.QualityProfileItem, error) {
	items := make([]*model.QualityProfileItem, 0)
	stmt := table.QualityProfileItem.
		SELECT(table.QualityProfileItem.AllColumns).
		FROM(table.QualityProfileItem).
		WHERE(table.QualityProfileItem.QualityProfileID.EQ(sqlite.Int64(profileID))).
		ORDER_BY(table.QualityProfileItem.SortOrder.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &items)
	if err != nil {
		return nil, fmt.Errorf("list quality profile items for profile %d: %w", profileID, err)
	}
	return items, nil
}

// DeleteQualityProfileItemsForProfile clears a profile's quality rows so
// they can be rewritten wholesale from an update request.
func (s *SQLite) DeleteQualityProfileItemsForProfile(ctx context.Context, profileID int64) error {
	stmt := table.QualityProfileItem.DELETE().WHERE(table.QualityProfileItem.QualityProfileID.EQ(sqlite.Int64(profileID)))
	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("delete quality profile items for profile %d: %w", profileID, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateTileIfAbsent atomically inserts a tile only if no record with that cell id exists.
// The insert-or-nothing is a single statement at the storage layer; RowsAffected is the
// conflict signal, so two concurrent locks for the same cell can never both succeed.
func (s *pgStore) CreateTileIfAbsent(ctx context.Context, tile *schema.Tile) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(tile)
	if res.Error != nil {
		return false, fmt.Errorf("failed to create tile: %w", res.Error)
	}

	return res.RowsAffected == 1, nil
}

// GetTileByID retrieves a tile by cell id
func (s *pgStore) GetTileByID(ctx context.Context, cellID string) (*schema.Tile, error) {
	var tile schema.Tile
	err := s.db.WithContext(ctx).Where("id = ?", cellID).First(&tile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tile: %w", err)
	}

	return &tile, nil
}

// MergeTileMetadata merges patch into the tile's metadata bag with a jsonb concatenation,
// preserving keys not mentioned in the patch
func (s *pgStore) MergeTileMetadata(ctx context.Context, cellID string, patch map[string]interface{}) error {
	if len(patch) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.Tile{}).
		Where("id = ?", cellID).
		Updates(map[string]interface{}{
			"metadata": gorm.Expr("metadata || ?", datatypes.JSONMap(patch)),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to merge tile metadata: %w", err)
	}

	return nil
}

// SettleTile conditionally moves a LOCKED tile to the given status. The WHERE clause
// carries both the expected status and the expected owner, making the write itself the
// atomic guard against concurrent confirms rather than the earlier precondition reads.
func (s *pgStore) SettleTile(ctx context.Context, cellID string, owner string, status domain.TileStatus, patch map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{
		"status": status,
	}
	if len(patch) > 0 {
		updates["metadata"] = gorm.Expr("metadata || ?", datatypes.JSONMap(patch))
	}

	res := s.db.WithContext(ctx).
		Model(&schema.Tile{}).
		Where("id = ? AND status = ? AND owner_address = ?", cellID, domain.TileStatusLocked, owner).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to settle tile: %w", res.Error)
	}

	return res.RowsAffected == 1, nil
}

// MatureTile conditionally moves a PROCESSING tile to OWNED. A second concurrent
// maturation attempt finds no PROCESSING row and becomes a no-op.
func (s *pgStore) MatureTile(ctx context.Context, cellID string, patch map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{
		"status": domain.TileStatusOwned,
	}
	if len(patch) > 0 {
		updates["metadata"] = gorm.Expr("metadata || ?", datatypes.JSONMap(patch))
	}

	res := s.db.WithContext(ctx).
		Model(&schema.Tile{}).
		Where("id = ? AND status = ?", cellID, domain.TileStatusProcessing).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mature tile: %w", res.Error)
	}

	return res.RowsAffected == 1, nil
}

// GetTilesByOwner retrieves an owner's tiles ordered by game date descending
func (s *pgStore) GetTilesByOwner(ctx context.Context, ownerAddress string) ([]*schema.Tile, error) {
	var tiles []*schema.Tile
	err := s.db.WithContext(ctx).
		Where("owner_address = ?", ownerAddress).
		Order("game_date DESC").
		Find(&tiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tiles by owner: %w", err)
	}

	return tiles, nil
}

// GetMaturedEscrowTiles retrieves PROCESSING tiles whose escrow release time
// (ripple-epoch seconds stored in metadata) is at or before cutoff
func (s *pgStore) GetMaturedEscrowTiles(ctx context.Context, cutoff int64, limit int) ([]*schema.Tile, error) {
	finishAfter := fmt.Sprintf("(metadata->>'%s')::bigint", schema.MetaFinishAfter)

	var tiles []*schema.Tile
	q := s.db.WithContext(ctx).
		Where(fmt.Sprintf("status = ? AND %s <= ?", finishAfter), domain.TileStatusProcessing, cutoff).
		Order(finishAfter + " ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&tiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get matured escrow tiles: %w", err)
	}

	return tiles, nil
}

// GetTilesInBoundingBox retrieves tiles inside a viewport with the given statuses,
// optionally restricted to a game-date window
func (s *pgStore) GetTilesInBoundingBox(ctx context.Context, box domain.BoundingBox, statuses []domain.TileStatus, since, until *time.Time) ([]*schema.Tile, error) {
	q := s.db.WithContext(ctx).
		Where("lon BETWEEN ? AND ?", box.MinLon, box.MaxLon).
		Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat)

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if since != nil {
		q = q.Where("game_date >= ?", *since)
	}
	if until != nil {
		q = q.Where("game_date <= ?", *until)
	}

	var tiles []*schema.Tile
	if err := q.Find(&tiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get tiles in bounding box: %w", err)
	}

	return tiles, nil
}

// CountTiles returns the total number of tile records
func (s *pgStore) CountTiles(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Tile{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tiles: %w", err)
	}

	return count, nil
}

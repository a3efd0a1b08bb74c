package store

import (
	"context"
	"time"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/store/schema"
)

// Store defines the interface for tile persistence
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateTileIfAbsent atomically inserts a tile only if no record with that
	// cell id exists. It returns created=false (and no error) when a record is
	// already present, in any state. This single insert is what guarantees at
	// most one owner per tile under concurrent lock requests.
	CreateTileIfAbsent(ctx context.Context, tile *schema.Tile) (created bool, err error)

	// GetTileByID retrieves a tile by cell id, returning nil when absent
	GetTileByID(ctx context.Context, cellID string) (*schema.Tile, error)

	// MergeTileMetadata merges patch into the tile's metadata bag.
	// Keys not present in patch are preserved.
	MergeTileMetadata(ctx context.Context, cellID string, patch map[string]interface{}) error

	// SettleTile moves a LOCKED tile owned by owner to status, merging patch
	// into its metadata, as one conditional update. It returns settled=false
	// when the tile is no longer LOCKED or the owner differs, so a lost
	// confirm race surfaces as a conflict instead of a double settlement.
	SettleTile(ctx context.Context, cellID string, owner string, status domain.TileStatus, patch map[string]interface{}) (settled bool, err error)

	// MatureTile moves a PROCESSING tile to OWNED, merging patch into its
	// metadata, as one conditional update keyed on the current status.
	// A concurrent sweep that already matured the tile makes this a no-op.
	MatureTile(ctx context.Context, cellID string, patch map[string]interface{}) (matured bool, err error)

	// GetTilesByOwner retrieves an owner's tiles ordered by game date descending
	GetTilesByOwner(ctx context.Context, ownerAddress string) ([]*schema.Tile, error)

	// GetMaturedEscrowTiles retrieves PROCESSING tiles whose stored escrow
	// release time (ripple-epoch seconds) is at or before cutoff
	GetMaturedEscrowTiles(ctx context.Context, cutoff int64, limit int) ([]*schema.Tile, error)

	// GetTilesInBoundingBox retrieves tiles inside a viewport with the given
	// statuses, optionally restricted to a game-date window
	GetTilesInBoundingBox(ctx context.Context, box domain.BoundingBox, statuses []domain.TileStatus, since, until *time.Time) ([]*schema.Tile, error)

	// CountTiles returns the total number of tile records
	CountTiles(ctx context.Context) (int64, error)
}

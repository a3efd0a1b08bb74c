package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hexearth/hexearth/internal/domain"
)

// Metadata keys accumulated over a tile's lifecycle.
// The bag is merge-only: later writes never remove earlier keys.
const (
	// MetaImage is the tile's decorative image URL, chosen at lock time
	MetaImage = "image"
	// MetaImageHash is the sha256 of the image content (hex), computed once at lock time
	MetaImageHash = "imageHash"
	// MetaTxHash is the settlement transaction hash recorded at confirm time
	MetaTxHash = "txHash"
	// MetaPricePaid is the settled price in drops
	MetaPricePaid = "pricePaid"
	// MetaEscrowSequence is the escrow-create transaction sequence, referenced by the finish
	MetaEscrowSequence = "escrowSequence"
	// MetaEscrowOwner is the account that submitted the escrow create
	MetaEscrowOwner = "escrowOwner"
	// MetaFinishAfter is the escrow release instant in ripple-epoch seconds
	MetaFinishAfter = "finishAfter"
	// MetaNFTokenID is the minted token identifier
	MetaNFTokenID = "nftId"
	// MetaOfferID is the zero-price transfer offer identifier
	MetaOfferID = "offerId"
)

// Tile represents the tiles table - one row per claimed hexagonal cell.
// The cell id is the primary key; the database unique constraint is what
// enforces the one-owner-per-tile invariant.
type Tile struct {
	// ID is the H3 cell id
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Lon/Lat is the cell center, derived from the id at lock time and kept for spatial queries
	Lon float64 `gorm:"column:lon;not null;index:idx_tiles_lon"`
	Lat float64 `gorm:"column:lat;not null;index:idx_tiles_lat"`
	// Status is the settlement state (LOCKED, PAID, PROCESSING, OWNED)
	Status domain.TileStatus `gorm:"column:status;not null;type:text;index:idx_tiles_status"`
	// OwnerAddress is the claimant wallet, set once at lock time
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index:idx_tiles_owner"`
	// GameDate is the user-chosen logical timestamp of the claim
	GameDate time.Time `gorm:"column:game_date;not null;index:idx_tiles_game_date,sort:desc"`
	// Metadata is the open-ended attribute bag (merged, never replaced)
	Metadata datatypes.JSONMap `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Tile model
func (Tile) TableName() string {
	return "tiles"
}

// MetaString returns a string metadata value, or "" when absent or not a string
func (t *Tile) MetaString(key string) string {
	if t.Metadata == nil {
		return ""
	}
	if s, ok := t.Metadata[key].(string); ok {
		return s
	}
	return ""
}

// MetaInt64 returns a numeric metadata value as int64, or 0 when absent.
// jsonb numbers unmarshal as float64, so both forms are accepted.
func (t *Tile) MetaInt64(key string) int64 {
	if t.Metadata == nil {
		return 0
	}
	switch v := t.Metadata[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

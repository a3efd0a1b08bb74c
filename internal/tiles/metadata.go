package tiles

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/store/schema"
)

// MetadataDocument is the NFT metadata document the minted token's URI points
// at. It is computed live from the current tile record on every request, never
// snapshotted at mint time.
type MetadataDocument struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

// MetadataAttribute is one display attribute of the metadata document
type MetadataAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// dropsPerXRP converts drops to display units
const dropsPerXRP = 1_000_000

// MetadataDocument builds the live metadata document for a cell
func (o *orchestrator) MetadataDocument(ctx context.Context, cellID domain.CellID) (*MetadataDocument, error) {
	tile, err := o.store.GetTileByID(ctx, string(cellID))
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, domain.ErrTileNotFound
	}

	return &MetadataDocument{
		Name:        fmt.Sprintf("HexEarth Tile %s", tile.ID),
		Description: "Ownership claim of a hexagonal cell of the HexEarth world map.",
		Image:       tile.MetaString(schema.MetaImage),
		Attributes: []MetadataAttribute{
			{TraitType: "Price (XRP)", Value: dropsToXRP(tile.MetaString(schema.MetaPricePaid))},
			{TraitType: "Purchase Date", Value: tile.CreatedAt.UTC().Format(time.RFC3339)},
			{TraitType: "Cell ID", Value: tile.ID},
			{TraitType: "Image Hash", Value: tile.MetaString(schema.MetaImageHash)},
		},
	}, nil
}

// dropsToXRP renders a drops string in display units; a missing or malformed
// value renders as zero rather than failing the whole document
func dropsToXRP(drops string) float64 {
	n, err := strconv.ParseInt(drops, 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / dropsPerXRP
}

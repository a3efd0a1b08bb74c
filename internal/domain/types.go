package domain

import (
	"encoding/hex"
	"strings"

	h3 "github.com/uber/h3-go/v4"
)

// TileStatus represents the settlement state of a tile claim
type TileStatus string

const (
	// TileStatusLocked means the tile is reserved and awaiting payment confirmation
	TileStatusLocked TileStatus = "LOCKED"
	// TileStatusPaid is declared for storage fidelity with legacy records; no code path produces it
	TileStatusPaid TileStatus = "PAID"
	// TileStatusProcessing means an escrow was confirmed and the tile awaits escrow maturation
	TileStatusProcessing TileStatus = "PROCESSING"
	// TileStatusOwned means settlement is final
	TileStatusOwned TileStatus = "OWNED"
)

// IsValidTileStatus checks if a status is one of the declared tile states
func IsValidTileStatus(status TileStatus) bool {
	return status == TileStatusLocked ||
		status == TileStatusPaid ||
		status == TileStatusProcessing ||
		status == TileStatusOwned
}

// CellID is the identifier of a fixed-resolution hexagonal geographic cell
// (an H3 index in its canonical string form, e.g. "8928308280fffff").
// It is the tile's primary key.
type CellID string

// Valid reports whether the cell id parses to a valid H3 cell
func (c CellID) Valid() bool {
	if c == "" {
		return false
	}
	return h3.Cell(h3.IndexFromString(string(c))).IsValid()
}

// LatLng derives the cell's center point from the id
func (c CellID) LatLng() (lat float64, lng float64) {
	ll := h3.CellToLatLng(h3.Cell(h3.IndexFromString(string(c))))
	return ll.Lat, ll.Lng
}

// MemoHex returns the correlation tag for this cell: the uppercase
// hex encoding of the raw cell id bytes. This is the only binding between
// an off-band ledger payment and a specific tile claim, so matching
// against it must be exact.
func (c CellID) MemoHex() string {
	return strings.ToUpper(hex.EncodeToString([]byte(c)))
}

// BoundingBox is a lon/lat viewport rectangle
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Valid reports whether the box is well-formed
func (b BoundingBox) Valid() bool {
	return b.MinLon <= b.MaxLon && b.MinLat <= b.MaxLat &&
		b.MinLon >= -180 && b.MaxLon <= 180 &&
		b.MinLat >= -90 && b.MaxLat <= 90
}

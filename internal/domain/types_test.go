package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hexearth/hexearth/internal/domain"
)

func TestCellID_Valid(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"8928308280fffff", true},
		{"8928308280bffff", true},
		{"", false},
		{"not-a-cell", false},
		{"0", false},
		{"ffffffffffffffff", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, domain.CellID(tc.id).Valid(), "cell id %q", tc.id)
	}
}

func TestCellID_LatLng(t *testing.T) {
	// 8928308280fffff is a resolution-9 cell in downtown San Francisco
	lat, lng := domain.CellID("8928308280fffff").LatLng()
	assert.InDelta(t, 37.77, lat, 0.05)
	assert.InDelta(t, -122.42, lng, 0.05)
}

func TestCellID_MemoHex(t *testing.T) {
	// The correlation tag is the uppercase hex of the raw id bytes
	assert.Equal(t,
		"383932383330383238306666666666",
		domain.CellID("8928308280fffff").MemoHex(),
	)
	assert.Equal(t, "", domain.CellID("").MemoHex())
}

func TestIsValidTileStatus(t *testing.T) {
	for _, s := range []domain.TileStatus{
		domain.TileStatusLocked,
		domain.TileStatusPaid,
		domain.TileStatusProcessing,
		domain.TileStatusOwned,
	} {
		assert.True(t, domain.IsValidTileStatus(s))
	}

	assert.False(t, domain.IsValidTileStatus("SETTLED"))
	assert.False(t, domain.IsValidTileStatus(""))
	assert.False(t, domain.IsValidTileStatus("owned"))
}

func TestBoundingBox_Valid(t *testing.T) {
	assert.True(t, domain.BoundingBox{MinLon: -123, MinLat: 37, MaxLon: -122, MaxLat: 38}.Valid())
	assert.True(t, domain.BoundingBox{MinLon: -180, MinLat: -90, MaxLon: 180, MaxLat: 90}.Valid())

	// Inverted corners
	assert.False(t, domain.BoundingBox{MinLon: -122, MinLat: 37, MaxLon: -123, MaxLat: 38}.Valid())
	assert.False(t, domain.BoundingBox{MinLon: -123, MinLat: 38, MaxLon: -122, MaxLat: 37}.Valid())

	// Out of range
	assert.False(t, domain.BoundingBox{MinLon: -181, MinLat: 0, MaxLon: 0, MaxLat: 1}.Valid())
	assert.False(t, domain.BoundingBox{MinLon: 0, MinLat: 0, MaxLon: 0, MaxLat: 91}.Valid())
}

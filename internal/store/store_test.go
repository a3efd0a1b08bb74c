package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/store/schema"
)

const (
	testCellID   = "8928308280fffff"
	testClaimant = "rAlice4fJ9qS5xTmGhLkP2vNcRtB8wYzD3"
)

func newTestTile(cellID string) *schema.Tile {
	return &schema.Tile{
		ID:           cellID,
		Lon:          -122.41,
		Lat:          37.77,
		Status:       domain.TileStatusLocked,
		OwnerAddress: testClaimant,
		GameDate:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Metadata: map[string]interface{}{
			schema.MetaImage:     "http://localhost:8080/images/tile_01.svg",
			schema.MetaImageHash: "abc123",
		},
	}
}

// RunStoreTests runs the store test suite against any Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	t.Run("CreateTileIfAbsent", func(t *testing.T) {
		testCreateTileIfAbsent(t, initDB, cleanupDB)
	})
	t.Run("GetTileByID", func(t *testing.T) {
		testGetTileByID(t, initDB, cleanupDB)
	})
	t.Run("MergeTileMetadata", func(t *testing.T) {
		testMergeTileMetadata(t, initDB, cleanupDB)
	})
	t.Run("SettleTile", func(t *testing.T) {
		testSettleTile(t, initDB, cleanupDB)
	})
	t.Run("MatureTile", func(t *testing.T) {
		testMatureTile(t, initDB, cleanupDB)
	})
	t.Run("GetTilesByOwner", func(t *testing.T) {
		testGetTilesByOwner(t, initDB, cleanupDB)
	})
	t.Run("GetMaturedEscrowTiles", func(t *testing.T) {
		testGetMaturedEscrowTiles(t, initDB, cleanupDB)
	})
	t.Run("GetTilesInBoundingBox", func(t *testing.T) {
		testGetTilesInBoundingBox(t, initDB, cleanupDB)
	})
	t.Run("CountTiles", func(t *testing.T) {
		testCountTiles(t, initDB, cleanupDB)
	})
}

func testCreateTileIfAbsent(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	created, err := st.CreateTileIfAbsent(ctx, newTestTile(testCellID))
	require.NoError(t, err)
	assert.True(t, created)

	// A second insert for the same cell must be rejected regardless of claimant
	dup := newTestTile(testCellID)
	dup.OwnerAddress = "rSomebodyElse11111111111111111111"
	created, err = st.CreateTileIfAbsent(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	// The original record is untouched
	tile, err := st.GetTileByID(ctx, testCellID)
	require.NoError(t, err)
	require.NotNil(t, tile)
	assert.Equal(t, testClaimant, tile.OwnerAddress)
}

func testGetTileByID(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	tile, err := st.GetTileByID(ctx, "89283082807ffff")
	require.NoError(t, err)
	assert.Nil(t, tile)

	_, err = st.CreateTileIfAbsent(ctx, newTestTile(testCellID))
	require.NoError(t, err)

	tile, err = st.GetTileByID(ctx, testCellID)
	require.NoError(t, err)
	require.NotNil(t, tile)
	assert.Equal(t, testCellID, tile.ID)
	assert.Equal(t, domain.TileStatusLocked, tile.Status)
	assert.Equal(t, "abc123", tile.MetaString(schema.MetaImageHash))
}

func testMergeTileMetadata(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	_, err := st.CreateTileIfAbsent(ctx, newTestTile(testCellID))
	require.NoError(t, err)

	err = st.MergeTileMetadata(ctx, testCellID, map[string]interface{}{
		schema.MetaNFTokenID: "TOKEN1",
	})
	require.NoError(t, err)

	tile, err := st.GetTileByID(ctx, testCellID)
	require.NoError(t, err)

	// Earlier keys survive the merge
	assert.Equal(t, "TOKEN1", tile.MetaString(schema.MetaNFTokenID))
	assert.Equal(t, "abc123", tile.MetaString(schema.MetaImageHash))
}

func testSettleTile(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	_, err := st.CreateTileIfAbsent(ctx, newTestTile(testCellID))
	require.NoError(t, err)

	// Settling with the wrong owner is a no-op
	settled, err := st.SettleTile(ctx, testCellID, "rSomebodyElse11111111111111111111", domain.TileStatusOwned, nil)
	require.NoError(t, err)
	assert.False(t, settled)

	patch := map[string]interface{}{
		schema.MetaTxHash:    "TXHASH",
		schema.MetaPricePaid: "10000000",
	}
	settled, err = st.SettleTile(ctx, testCellID, testClaimant, domain.TileStatusOwned, patch)
	require.NoError(t, err)
	assert.True(t, settled)

	tile, err := st.GetTileByID(ctx, testCellID)
	require.NoError(t, err)
	assert.Equal(t, domain.TileStatusOwned, tile.Status)
	assert.Equal(t, "TXHASH", tile.MetaString(schema.MetaTxHash))
	assert.Equal(t, "abc123", tile.MetaString(schema.MetaImageHash))

	// The tile is no longer LOCKED, so a second settlement loses the race
	settled, err = st.SettleTile(ctx, testCellID, testClaimant, domain.TileStatusOwned, nil)
	require.NoError(t, err)
	assert.False(t, settled)
}

func testMatureTile(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	_, err := st.CreateTileIfAbsent(ctx, newTestTile(testCellID))
	require.NoError(t, err)

	// Not PROCESSING yet
	matured, err := st.MatureTile(ctx, testCellID, nil)
	require.NoError(t, err)
	assert.False(t, matured)

	settled, err := st.SettleTile(ctx, testCellID, testClaimant, domain.TileStatusProcessing, map[string]interface{}{
		schema.MetaEscrowSequence: 42,
		schema.MetaEscrowOwner:    testClaimant,
		schema.MetaFinishAfter:    800000000,
	})
	require.NoError(t, err)
	require.True(t, settled)

	matured, err = st.MatureTile(ctx, testCellID, nil)
	require.NoError(t, err)
	assert.True(t, matured)

	tile, err := st.GetTileByID(ctx, testCellID)
	require.NoError(t, err)
	assert.Equal(t, domain.TileStatusOwned, tile.Status)

	// A second attempt finds no PROCESSING row
	matured, err = st.MatureTile(ctx, testCellID, nil)
	require.NoError(t, err)
	assert.False(t, matured)
}

func testGetTilesByOwner(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	older := newTestTile("8928308280bffff")
	older.GameDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := newTestTile(testCellID)
	newer.GameDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	other := newTestTile("89283082807ffff")
	other.OwnerAddress = "rSomebodyElse11111111111111111111"

	for _, tile := range []*schema.Tile{older, newer, other} {
		_, err := st.CreateTileIfAbsent(ctx, tile)
		require.NoError(t, err)
	}

	tiles, err := st.GetTilesByOwner(ctx, testClaimant)
	require.NoError(t, err)
	require.Len(t, tiles, 2)

	// Most recent game date first
	assert.Equal(t, testCellID, tiles[0].ID)
	assert.Equal(t, "8928308280bffff", tiles[1].ID)
}

func testGetMaturedEscrowTiles(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	cutoff := int64(800000000)

	matured := newTestTile(testCellID)
	matured.Status = domain.TileStatusProcessing
	matured.Metadata[schema.MetaFinishAfter] = cutoff - 100

	pending := newTestTile("8928308280bffff")
	pending.Status = domain.TileStatusProcessing
	pending.Metadata[schema.MetaFinishAfter] = cutoff + 100

	alreadyOwned := newTestTile("89283082807ffff")
	alreadyOwned.Status = domain.TileStatusOwned
	alreadyOwned.Metadata[schema.MetaFinishAfter] = cutoff - 100

	locked := newTestTile("89283082803ffff")

	for _, tile := range []*schema.Tile{matured, pending, alreadyOwned, locked} {
		_, err := st.CreateTileIfAbsent(ctx, tile)
		require.NoError(t, err)
	}

	tiles, err := st.GetMaturedEscrowTiles(ctx, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, tiles, 1)
	assert.Equal(t, testCellID, tiles[0].ID)

	// An exact-cutoff release time counts as matured
	tiles, err = st.GetMaturedEscrowTiles(ctx, cutoff+100, 10)
	require.NoError(t, err)
	assert.Len(t, tiles, 2)

	// The batch limit caps the scan
	tiles, err = st.GetMaturedEscrowTiles(ctx, cutoff+100, 1)
	require.NoError(t, err)
	require.Len(t, tiles, 1)
	assert.Equal(t, testCellID, tiles[0].ID, "earliest release time first")
}

func testGetTilesInBoundingBox(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	inside := newTestTile(testCellID)
	inside.Status = domain.TileStatusOwned

	outside := newTestTile("8928308280bffff")
	outside.Status = domain.TileStatusOwned
	outside.Lon = 13.40
	outside.Lat = 52.52

	lockedInside := newTestTile("89283082807ffff")

	maturingOutside := newTestTile("89283082803ffff")
	maturingOutside.Status = domain.TileStatusProcessing
	maturingOutside.Lon = 13.40
	maturingOutside.Lat = 52.52

	for _, tile := range []*schema.Tile{inside, outside, lockedInside, maturingOutside} {
		_, err := st.CreateTileIfAbsent(ctx, tile)
		require.NoError(t, err)
	}

	box := domain.BoundingBox{MinLon: -123, MinLat: 37, MaxLon: -122, MaxLat: 38}
	visible := []domain.TileStatus{domain.TileStatusLocked, domain.TileStatusPaid, domain.TileStatusProcessing, domain.TileStatusOwned}

	tiles, err := st.GetTilesInBoundingBox(ctx, box, visible, nil, nil)
	require.NoError(t, err)
	require.Len(t, tiles, 2, "tiles outside the viewport are filtered out")
	ids := []string{tiles[0].ID, tiles[1].ID}
	assert.Contains(t, ids, testCellID)
	assert.Contains(t, ids, "89283082807ffff", "in-flight locks are part of the viewport")

	// A game-date window before the claims hides them
	until := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tiles, err = st.GetTilesInBoundingBox(ctx, box, visible, nil, &until)
	require.NoError(t, err)
	assert.Empty(t, tiles)

	// A status filter narrows the viewport to matching states
	tiles, err = st.GetTilesInBoundingBox(ctx, box, []domain.TileStatus{domain.TileStatusOwned}, nil, nil)
	require.NoError(t, err)
	require.Len(t, tiles, 1)
	assert.Equal(t, testCellID, tiles[0].ID)

	// No status filter returns everything inside the box
	tiles, err = st.GetTilesInBoundingBox(ctx, box, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, tiles, 2)
}

func testCountTiles(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	st := initDB(t)
	defer cleanupDB(t)
	ctx := context.Background()

	count, err := st.CountTiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for _, id := range []string{testCellID, "8928308280bffff", "89283082807ffff"} {
		_, err := st.CreateTileIfAbsent(ctx, newTestTile(id))
		require.NoError(t, err)
	}

	count, err = st.CountTiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

package tiles_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/logger"
	"github.com/hexearth/hexearth/internal/mocks"
	"github.com/hexearth/hexearth/internal/store/schema"
	"github.com/hexearth/hexearth/internal/tiles"
	"github.com/hexearth/hexearth/internal/verifier"
)

const (
	testMerchant = "rMerchantHxE4rth111111111111111111"
	testClaimant = "rAlice4fJ9qS5xTmGhLkP2vNcRtB8wYzD3"
	testCellID   = "8928308280fffff"
	testTxHash   = "E3FE6EA3D48F0C2B639448020EA4F03D4F4F8FFDB243A852A0F59177921B4879"
	testPrice    = "10000000"
	testBaseURL  = "http://localhost:8080"
	testNFTID    = "00080000B4F4F8FFDB243A852A0F5917E3FE6EA3D48F0C2B0000000000000001"
	testOfferID  = "AEBABA4FB6BD27E712D0C55F7B0A9E776A3B68FD2D948C3A6D9A3C0B8C0D0E0F"
)

type testOrchestratorMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	gateway      *mocks.MockGateway
	verifier     *mocks.MockVerifier
	images       *tiles.ImagePool
	orchestrator tiles.Orchestrator
}

func setupTestOrchestrator(t *testing.T) *testOrchestratorMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)

	images, err := tiles.LoadImagePool()
	require.NoError(t, err)
	require.NotZero(t, images.Size())

	tm := &testOrchestratorMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		gateway:  mocks.NewMockGateway(ctrl),
		verifier: mocks.NewMockVerifier(ctrl),
		images:   images,
	}

	tm.orchestrator = tiles.NewOrchestrator(tiles.Config{
		PriceDrops:    testPrice,
		PublicBaseURL: testBaseURL,
		MintWorkers:   2,
	}, tm.store, tm.gateway, tm.verifier, images)

	return tm
}

func lockedTile() *schema.Tile {
	img := "http://localhost:8080/images/tile_01.svg"
	return &schema.Tile{
		ID:           testCellID,
		Lon:          -122.41,
		Lat:          37.77,
		Status:       domain.TileStatusLocked,
		OwnerAddress: testClaimant,
		GameDate:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Metadata: map[string]interface{}{
			schema.MetaImage:     img,
			schema.MetaImageHash: "abc123",
		},
	}
}

func tokenURIHex() string {
	return strings.ToUpper(hex.EncodeToString([]byte(testBaseURL + "/metadata/" + testCellID)))
}

// expectMintFlow wires the full mint-and-offer sequence on the gateway and
// returns a channel closed once the resulting token ids are persisted
func expectMintFlow(t *testing.T, tm *testOrchestratorMocks) chan struct{} {
	done := make(chan struct{})

	tm.gateway.EXPECT().
		MintNFT(gomock.Any(), tokenURIHex()).
		Return(&ledger.Transaction{Hash: "MINTHASH"}, nil)
	tm.gateway.EXPECT().
		GetAccountNFTs(gomock.Any(), testMerchant).
		Return([]ledger.NFToken{
			{NFTokenID: "UNRELATED", URI: "DEADBEEF"},
			{NFTokenID: testNFTID, URI: tokenURIHex()},
		}, nil)
	tm.gateway.EXPECT().
		CreateSellOffer(gomock.Any(), testNFTID, testClaimant).
		Return(&ledger.Transaction{Hash: "OFFERHASH"}, nil)
	tm.gateway.EXPECT().
		GetNFTSellOffers(gomock.Any(), testNFTID).
		Return([]ledger.NFTOffer{
			{OfferID: testOfferID, Destination: testClaimant},
		}, nil)
	tm.store.EXPECT().
		MergeTileMetadata(gomock.Any(), testCellID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, patch map[string]interface{}) error {
			defer close(done)
			assert.Equal(t, testNFTID, patch[schema.MetaNFTokenID])
			assert.Equal(t, testOfferID, patch[schema.MetaOfferID])
			return nil
		})

	return done
}

func TestLock_Success(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().CountTiles(gomock.Any()).Return(int64(0), nil)
	tm.store.EXPECT().
		CreateTileIfAbsent(gomock.Any(), gomock.Any()).
		Return(true, nil)

	gameDate := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	result, err := tm.orchestrator.Lock(context.Background(), testCellID, testClaimant, gameDate)
	require.NoError(t, err)
	require.NotNil(t, result)

	tile := result.Tile
	assert.Equal(t, testCellID, tile.ID)
	assert.Equal(t, domain.TileStatusLocked, tile.Status)
	assert.Equal(t, testClaimant, tile.OwnerAddress)
	assert.Equal(t, gameDate, tile.GameDate)

	// The test cell sits in downtown San Francisco
	assert.InDelta(t, 37.77, tile.Lat, 0.05)
	assert.InDelta(t, -122.42, tile.Lon, 0.05)

	// The image pick for an empty table is the first pool entry
	first := tm.images.Images()[0]
	assert.Equal(t, first.Hash, result.ImageHash)
	assert.Equal(t, first.Hash, tile.Metadata[schema.MetaImageHash])
	assert.Equal(t, testBaseURL+"/images/"+first.Name, tile.Metadata[schema.MetaImage])
}

func TestLock_InvalidCellID(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	for _, id := range []string{"", "not-a-cell", "zzzz308280fffff"} {
		_, err := tm.orchestrator.Lock(context.Background(), domain.CellID(id), testClaimant, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidCellID, "cell id %q", id)
	}
}

func TestLock_TileTaken(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().CountTiles(gomock.Any()).Return(int64(7), nil)
	tm.store.EXPECT().
		CreateTileIfAbsent(gomock.Any(), gomock.Any()).
		Return(false, nil)

	_, err := tm.orchestrator.Lock(context.Background(), testCellID, testClaimant, time.Now())
	assert.ErrorIs(t, err, domain.ErrTileTaken)
}

func TestConfirm_TileNotFound(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(nil, nil)

	_, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, testClaimant)
	assert.ErrorIs(t, err, domain.ErrTileNotFound)
}

func TestConfirm_AlreadyOwned(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tile := lockedTile()
	tile.Status = domain.TileStatusOwned
	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(tile, nil)

	_, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, testClaimant)
	assert.ErrorIs(t, err, domain.ErrTileAlreadyOwned)
}

func TestConfirm_WalletMismatch(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(lockedTile(), nil)

	_, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, "rMalloryZZZZ1111111111111111111111")
	assert.ErrorIs(t, err, domain.ErrWalletMismatch)
}

func TestConfirm_DirectPayment(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	memoHex := domain.CellID(testCellID).MemoHex()

	tm.gateway.EXPECT().MerchantAddress().Return(testMerchant).AnyTimes()
	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(lockedTile(), nil)
	tm.verifier.EXPECT().
		VerifyPayment(gomock.Any(), testTxHash, testMerchant, testPrice, memoHex).
		Return(true, nil)
	tm.store.EXPECT().
		SettleTile(gomock.Any(), testCellID, testClaimant, domain.TileStatusOwned, gomock.Any()).
		Return(true, nil)

	minted := expectMintFlow(t, tm)

	result, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, testClaimant)
	require.NoError(t, err)
	assert.False(t, result.Escrowed)
	assert.Equal(t, domain.TileStatusOwned, result.Tile.Status)
	assert.Equal(t, testTxHash, result.Tile.Metadata[schema.MetaTxHash])
	assert.Equal(t, testPrice, result.Tile.Metadata[schema.MetaPricePaid])

	// The mint task is detached; wait until it persists the token ids
	select {
	case <-minted:
	case <-time.After(2 * time.Second):
		t.Fatal("background mint did not complete")
	}
}

func TestConfirm_DirectPayment_LostRace(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gateway.EXPECT().MerchantAddress().Return(testMerchant).AnyTimes()
	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(lockedTile(), nil)
	tm.verifier.EXPECT().
		VerifyPayment(gomock.Any(), testTxHash, testMerchant, testPrice, gomock.Any()).
		Return(true, nil)
	tm.store.EXPECT().
		SettleTile(gomock.Any(), testCellID, testClaimant, domain.TileStatusOwned, gomock.Any()).
		Return(false, nil)

	_, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, testClaimant)
	assert.ErrorIs(t, err, domain.ErrTileAlreadyOwned)
}

func TestConfirm_Escrow(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	memoHex := domain.CellID(testCellID).MemoHex()
	release := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)

	tm.gateway.EXPECT().MerchantAddress().Return(testMerchant).AnyTimes()
	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(lockedTile(), nil)
	tm.verifier.EXPECT().
		VerifyPayment(gomock.Any(), testTxHash, testMerchant, testPrice, memoHex).
		Return(false, nil)
	tm.verifier.EXPECT().
		VerifyEscrowCreate(gomock.Any(), testTxHash, testMerchant, testPrice, memoHex).
		Return(&verifier.EscrowDetails{
			OfferSequence: 42,
			OwnerAddress:  testClaimant,
			FinishAfter:   release,
		}, nil)
	tm.store.EXPECT().
		SettleTile(gomock.Any(), testCellID, testClaimant, domain.TileStatusProcessing, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ domain.TileStatus, patch map[string]interface{}) (bool, error) {
			assert.Equal(t, uint32(42), patch[schema.MetaEscrowSequence])
			assert.Equal(t, testClaimant, patch[schema.MetaEscrowOwner])
			assert.Equal(t, ledger.RippleTime(release), patch[schema.MetaFinishAfter])
			return true, nil
		})

	result, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, testClaimant)
	require.NoError(t, err)
	assert.True(t, result.Escrowed)
	assert.Equal(t, domain.TileStatusProcessing, result.Tile.Status)
}

func TestConfirm_InvalidTransaction(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gateway.EXPECT().MerchantAddress().Return(testMerchant).AnyTimes()
	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(lockedTile(), nil)
	tm.verifier.EXPECT().
		VerifyPayment(gomock.Any(), testTxHash, testMerchant, testPrice, gomock.Any()).
		Return(false, nil)
	tm.verifier.EXPECT().
		VerifyEscrowCreate(gomock.Any(), testTxHash, testMerchant, testPrice, gomock.Any()).
		Return(nil, nil)

	_, err := tm.orchestrator.Confirm(context.Background(), testCellID, testTxHash, testClaimant)
	assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
}

func processingTile() *schema.Tile {
	tile := lockedTile()
	tile.Status = domain.TileStatusProcessing
	tile.Metadata[schema.MetaEscrowOwner] = testClaimant
	tile.Metadata[schema.MetaEscrowSequence] = float64(42)
	tile.Metadata[schema.MetaFinishAfter] = float64(ledger.RippleTime(time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)))
	return tile
}

func TestMature_Success(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gateway.EXPECT().MerchantAddress().Return(testMerchant).AnyTimes()
	tm.gateway.EXPECT().
		FinishEscrow(gomock.Any(), testClaimant, uint32(42)).
		Return(&ledger.Transaction{Hash: "FINISHHASH"}, nil)
	tm.store.EXPECT().
		MatureTile(gomock.Any(), testCellID, gomock.Any()).
		Return(true, nil)

	minted := expectMintFlow(t, tm)

	matured, err := tm.orchestrator.Mature(context.Background(), processingTile())
	require.NoError(t, err)
	assert.True(t, matured)

	select {
	case <-minted:
	case <-time.After(2 * time.Second):
		t.Fatal("mint after maturation did not complete")
	}
}

func TestMature_ConcurrentWinner(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gateway.EXPECT().
		FinishEscrow(gomock.Any(), testClaimant, uint32(42)).
		Return(&ledger.Transaction{Hash: "FINISHHASH"}, nil)
	tm.store.EXPECT().
		MatureTile(gomock.Any(), testCellID, gomock.Any()).
		Return(false, nil)

	matured, err := tm.orchestrator.Mature(context.Background(), processingTile())
	require.NoError(t, err)
	assert.False(t, matured)
}

func TestMature_FinishFails(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gateway.EXPECT().
		FinishEscrow(gomock.Any(), testClaimant, uint32(42)).
		Return(nil, assert.AnError)

	matured, err := tm.orchestrator.Mature(context.Background(), processingTile())
	require.Error(t, err)
	assert.False(t, matured)
}

func TestMature_MissingEscrowDetails(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tile := lockedTile()
	tile.Status = domain.TileStatusProcessing

	matured, err := tm.orchestrator.Mature(context.Background(), tile)
	require.Error(t, err)
	assert.False(t, matured)
}

func TestMetadataDocument(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tile := lockedTile()
	tile.Status = domain.TileStatusOwned
	tile.Metadata[schema.MetaPricePaid] = testPrice
	tile.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(tile, nil)

	doc, err := tm.orchestrator.MetadataDocument(context.Background(), testCellID)
	require.NoError(t, err)
	assert.Equal(t, "HexEarth Tile "+testCellID, doc.Name)
	assert.Equal(t, tile.MetaString(schema.MetaImage), doc.Image)

	attrs := map[string]interface{}{}
	for _, a := range doc.Attributes {
		attrs[a.TraitType] = a.Value
	}
	assert.Equal(t, 10.0, attrs["Price (XRP)"])
	assert.Equal(t, "2025-06-01T10:00:00Z", attrs["Purchase Date"])
	assert.Equal(t, testCellID, attrs["Cell ID"])
}

func TestMetadataDocument_NotFound(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetTileByID(gomock.Any(), testCellID).Return(nil, nil)

	_, err := tm.orchestrator.MetadataDocument(context.Background(), testCellID)
	assert.ErrorIs(t, err, domain.ErrTileNotFound)
}

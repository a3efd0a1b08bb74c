package tiles

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/logger"
	"github.com/hexearth/hexearth/internal/store"
	"github.com/hexearth/hexearth/internal/store/schema"
	"github.com/hexearth/hexearth/internal/verifier"
)

// Config holds orchestrator parameters
type Config struct {
	// PriceDrops is the exact tile price in drops expected on settlement transactions
	PriceDrops string
	// PublicBaseURL is the externally reachable base URL used for image URLs and token URIs
	PublicBaseURL string
	// MintWorkers bounds the pool running detached mint tasks
	MintWorkers int
}

// LockResult is the outcome of a successful lock
type LockResult struct {
	Tile *schema.Tile
	// ImageHash is returned separately because the client needs it to build the payment memo flow
	ImageHash string
}

// ConfirmResult is the outcome of a successful confirm
type ConfirmResult struct {
	Tile *schema.Tile
	// Escrowed is true when the settlement reference was an escrow creation and
	// final ownership awaits maturation
	Escrowed bool
}

// Orchestrator drives the tile acquisition state machine:
// lock, confirm (settle or escrow), mature, and the mint/offer flow
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// Lock reserves a fresh cell for the claimant. Conflicts with any existing
	// record, in any state, fail with domain.ErrTileTaken.
	Lock(ctx context.Context, cellID domain.CellID, claimant string, gameDate time.Time) (*LockResult, error)

	// Confirm settles a LOCKED tile against a ledger transaction reference,
	// trying direct-payment verification first and escrow verification second
	Confirm(ctx context.Context, cellID domain.CellID, txRef string, claimant string) (*ConfirmResult, error)

	// Mature finishes a matured escrow tile and mints its token. matured is
	// false when another maturation attempt already won the conditional update.
	Mature(ctx context.Context, tile *schema.Tile) (matured bool, err error)

	// MetadataDocument builds the live NFT metadata document for a cell
	MetadataDocument(ctx context.Context, cellID domain.CellID) (*MetadataDocument, error)
}

type orchestrator struct {
	cfg      Config
	store    store.Store
	gateway  ledger.Gateway
	verifier verifier.Verifier
	pool     *ImagePool
	mintPool pond.Pool
}

// NewOrchestrator creates the tile acquisition orchestrator
func NewOrchestrator(cfg Config, st store.Store, gw ledger.Gateway, v verifier.Verifier, images *ImagePool) Orchestrator {
	workers := cfg.MintWorkers
	if workers <= 0 {
		workers = 4
	}
	return &orchestrator{
		cfg:      cfg,
		store:    st,
		gateway:  gw,
		verifier: v,
		pool:     images,
		mintPool: pond.NewPool(workers),
	}
}

// Lock reserves a fresh cell for the claimant in LOCKED state
func (o *orchestrator) Lock(ctx context.Context, cellID domain.CellID, claimant string, gameDate time.Time) (*LockResult, error) {
	if !cellID.Valid() {
		return nil, domain.ErrInvalidCellID
	}

	// Image choice is keyed on the total tile count. Two concurrent locks may
	// read the same count and pick the same image; the choice is cosmetic only.
	count, err := o.store.CountTiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tiles: %w", err)
	}
	img := o.pool.Pick(count)

	lat, lng := cellID.LatLng()
	tile := &schema.Tile{
		ID:           string(cellID),
		Lon:          lng,
		Lat:          lat,
		Status:       domain.TileStatusLocked,
		OwnerAddress: claimant,
		GameDate:     gameDate,
		Metadata: map[string]interface{}{
			schema.MetaImage:     o.imageURL(img),
			schema.MetaImageHash: img.Hash,
		},
	}

	created, err := o.store.CreateTileIfAbsent(ctx, tile)
	if err != nil {
		return nil, err
	}
	if !created {
		// No distinction between locked-by-other and owned-by-other here
		return nil, domain.ErrTileTaken
	}

	logger.InfoCtx(ctx, "tile locked",
		zap.String("cell_id", string(cellID)),
		zap.String("claimant", claimant),
		zap.String("image", img.Name),
	)

	return &LockResult{Tile: tile, ImageHash: img.Hash}, nil
}

// Confirm settles a LOCKED tile against a ledger transaction reference
func (o *orchestrator) Confirm(ctx context.Context, cellID domain.CellID, txRef string, claimant string) (*ConfirmResult, error) {
	tile, err := o.store.GetTileByID(ctx, string(cellID))
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, domain.ErrTileNotFound
	}
	if tile.Status == domain.TileStatusOwned {
		return nil, domain.ErrTileAlreadyOwned
	}
	if tile.OwnerAddress != claimant {
		return nil, domain.ErrWalletMismatch
	}

	memoHex := cellID.MemoHex()
	merchant := o.gateway.MerchantAddress()

	// A transaction hash can only be one shape, so payment-first ordering is
	// arbitrary but harmless.
	paid, err := o.verifier.VerifyPayment(ctx, txRef, merchant, o.cfg.PriceDrops, memoHex)
	if err != nil {
		return nil, err
	}
	if paid {
		return o.settleDirect(ctx, cellID, tile, txRef, claimant)
	}

	escrow, err := o.verifier.VerifyEscrowCreate(ctx, txRef, merchant, o.cfg.PriceDrops, memoHex)
	if err != nil {
		return nil, err
	}
	if escrow != nil {
		return o.settleEscrow(ctx, cellID, tile, txRef, claimant, escrow)
	}

	return nil, domain.ErrInvalidTransaction
}

// settleDirect finalizes a direct payment: the tile becomes OWNED and minting is
// kicked off as a detached task whose failure never reaches the caller
func (o *orchestrator) settleDirect(ctx context.Context, cellID domain.CellID, tile *schema.Tile, txRef, claimant string) (*ConfirmResult, error) {
	patch := map[string]interface{}{
		schema.MetaTxHash:    txRef,
		schema.MetaPricePaid: o.cfg.PriceDrops,
	}

	settled, err := o.store.SettleTile(ctx, string(cellID), claimant, domain.TileStatusOwned, patch)
	if err != nil {
		return nil, err
	}
	if !settled {
		// A concurrent confirm won the conditional update
		return nil, domain.ErrTileAlreadyOwned
	}

	tile.Status = domain.TileStatusOwned
	for k, v := range patch {
		tile.Metadata[k] = v
	}

	logger.InfoCtx(ctx, "tile settled by direct payment",
		zap.String("cell_id", string(cellID)),
		zap.String("tx_hash", txRef),
	)

	// Ownership is final here; minting is best-effort enrichment. The task is
	// detached from the request context so a client disconnect cannot cancel it.
	o.mintPool.Submit(func() {
		mintCtx := context.Background()
		if err := o.mintAndOffer(mintCtx, cellID, claimant); err != nil {
			logger.Error(fmt.Errorf("background mint failed: %w", err),
				zap.String("cell_id", string(cellID)),
				zap.String("claimant", claimant),
			)
		}
	})

	return &ConfirmResult{Tile: tile}, nil
}

// settleEscrow records a confirmed escrow: the tile becomes PROCESSING and
// minting is deferred to maturation
func (o *orchestrator) settleEscrow(ctx context.Context, cellID domain.CellID, tile *schema.Tile, txRef, claimant string, escrow *verifier.EscrowDetails) (*ConfirmResult, error) {
	patch := map[string]interface{}{
		schema.MetaTxHash:         txRef,
		schema.MetaPricePaid:      o.cfg.PriceDrops,
		schema.MetaEscrowSequence: escrow.OfferSequence,
		schema.MetaEscrowOwner:    escrow.OwnerAddress,
		schema.MetaFinishAfter:    ledger.RippleTime(escrow.FinishAfter),
	}

	settled, err := o.store.SettleTile(ctx, string(cellID), claimant, domain.TileStatusProcessing, patch)
	if err != nil {
		return nil, err
	}
	if !settled {
		return nil, domain.ErrTileAlreadyOwned
	}

	tile.Status = domain.TileStatusProcessing
	for k, v := range patch {
		tile.Metadata[k] = v
	}

	logger.InfoCtx(ctx, "tile escrowed",
		zap.String("cell_id", string(cellID)),
		zap.String("tx_hash", txRef),
		zap.Time("finish_after", escrow.FinishAfter),
	)

	return &ConfirmResult{Tile: tile, Escrowed: true}, nil
}

// Mature finishes a matured escrow and mints the tile's token. The ledger call
// runs first; on failure the tile stays PROCESSING for the next sweep. The
// status move is a conditional update so an overlapping cycle cannot mint twice.
func (o *orchestrator) Mature(ctx context.Context, tile *schema.Tile) (bool, error) {
	escrowOwner := tile.MetaString(schema.MetaEscrowOwner)
	escrowSeq := tile.MetaInt64(schema.MetaEscrowSequence)
	if escrowOwner == "" || escrowSeq == 0 {
		return false, fmt.Errorf("tile %s has no escrow details", tile.ID)
	}

	finishTx, err := o.gateway.FinishEscrow(ctx, escrowOwner, uint32(escrowSeq))
	if err != nil {
		return false, fmt.Errorf("escrow finish failed: %w", err)
	}

	matured, err := o.store.MatureTile(ctx, tile.ID, map[string]interface{}{})
	if err != nil {
		return false, err
	}
	if !matured {
		// Another cycle already matured this tile; minting belongs to the winner
		logger.InfoCtx(ctx, "tile already matured by a concurrent cycle", zap.String("cell_id", tile.ID))
		return false, nil
	}

	logger.InfoCtx(ctx, "escrow matured",
		zap.String("cell_id", tile.ID),
		zap.String("finish_tx", finishTx.Hash),
	)

	// This path already runs in a background sweep, so minting is synchronous.
	// Its failure leaves a valid OWNED tile with incomplete metadata.
	if err := o.mintAndOffer(ctx, domain.CellID(tile.ID), tile.OwnerAddress); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("mint after maturation failed: %w", err),
			zap.String("cell_id", tile.ID),
		)
	}

	return true, nil
}

// mintAndOffer runs the four-step mint flow with the merchant identity:
// mint the token, recover its id from the merchant's holdings, create a
// zero-price sell offer restricted to the claimant, and persist both ids.
// Failures are not compensated; the claim is already final.
func (o *orchestrator) mintAndOffer(ctx context.Context, cellID domain.CellID, claimant string) error {
	uriHex := o.tokenURIHex(cellID)

	if _, err := o.gateway.MintNFT(ctx, uriHex); err != nil {
		return fmt.Errorf("mint failed: %w", err)
	}

	// The mint transaction does not return the assigned token id; scan the
	// merchant's holdings for the URI just minted.
	merchant := o.gateway.MerchantAddress()
	nfts, err := o.gateway.GetAccountNFTs(ctx, merchant)
	if err != nil {
		return fmt.Errorf("account tokens lookup failed: %w", err)
	}

	var nftokenID string
	for _, nft := range nfts {
		if strings.EqualFold(nft.URI, uriHex) {
			nftokenID = nft.NFTokenID
			break
		}
	}
	if nftokenID == "" {
		return fmt.Errorf("minted token for cell %s not found in merchant holdings", cellID)
	}

	if _, err := o.gateway.CreateSellOffer(ctx, nftokenID, claimant); err != nil {
		return fmt.Errorf("sell offer creation failed: %w", err)
	}

	offers, err := o.gateway.GetNFTSellOffers(ctx, nftokenID)
	if err != nil {
		return fmt.Errorf("sell offers lookup failed: %w", err)
	}

	var offerID string
	for _, offer := range offers {
		if offer.Destination == claimant {
			offerID = offer.OfferID
			break
		}
	}
	if offerID == "" {
		// The offer may not be discoverable yet; the token id is still worth
		// persisting so the claim flow can retry the metadata fetch
		logger.Warn("transfer offer not yet discoverable",
			zap.String("cell_id", string(cellID)),
			zap.String("nft_id", nftokenID),
		)
	}

	patch := map[string]interface{}{
		schema.MetaNFTokenID: nftokenID,
	}
	if offerID != "" {
		patch[schema.MetaOfferID] = offerID
	}
	if err := o.store.MergeTileMetadata(ctx, string(cellID), patch); err != nil {
		return fmt.Errorf("failed to persist token ids: %w", err)
	}

	logger.InfoCtx(ctx, "token minted and offered",
		zap.String("cell_id", string(cellID)),
		zap.String("nft_id", nftokenID),
		zap.String("offer_id", offerID),
	)

	return nil
}

// imageURL builds the public URL of a pool image
func (o *orchestrator) imageURL(img TileImage) string {
	return fmt.Sprintf("%s/images/%s", strings.TrimRight(o.cfg.PublicBaseURL, "/"), img.Name)
}

// tokenURIHex returns the hex-encoded metadata endpoint for a cell. The token's
// URI points at this service so displayed metadata is always served live.
func (o *orchestrator) tokenURIHex(cellID domain.CellID) string {
	uri := fmt.Sprintf("%s/metadata/%s", strings.TrimRight(o.cfg.PublicBaseURL, "/"), cellID)
	return strings.ToUpper(hex.EncodeToString([]byte(uri)))
}

package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/store"
	"github.com/hexearth/hexearth/internal/sweeper"
	"github.com/hexearth/hexearth/internal/tiles"
)

// Handler handles HTTP requests for the tile API
type Handler struct {
	orchestrator tiles.Orchestrator
	store        store.Store
	gateway      ledger.Gateway
	escrowSweep  sweeper.EscrowSweeper
	images       *tiles.ImagePool
}

// NewHandler creates a new REST API handler
func NewHandler(
	orchestrator tiles.Orchestrator,
	st store.Store,
	gateway ledger.Gateway,
	escrowSweep sweeper.EscrowSweeper,
	images *tiles.ImagePool,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        st,
		gateway:      gateway,
		escrowSweep:  escrowSweep,
		images:       images,
	}
}

// LockTile handles POST /tile/lock
func (h *Handler) LockTile(c *gin.Context) {
	var req lockTileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.orchestrator.Lock(c.Request.Context(), domain.CellID(req.CellID), req.ClaimantAddress, req.GameDate)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lockTileResponse{
		Tile:      toTileDTO(result.Tile),
		ImageHash: result.ImageHash,
	})
}

// ConfirmTile handles POST /tile/confirm
func (h *Handler) ConfirmTile(c *gin.Context) {
	var req confirmTileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.orchestrator.Confirm(c.Request.Context(), domain.CellID(req.CellID), req.TransactionRef, req.ClaimantAddress)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := confirmTileResponse{
		Tile:     toTileDTO(result.Tile),
		Escrowed: result.Escrowed,
	}
	if result.Escrowed {
		resp.Message = "escrow confirmed; ownership finalizes after the release time"
	}
	c.JSON(http.StatusOK, resp)
}

// GetTilesInView handles GET /tiles
//
// Query parameters:
//
//	bbox       - "minLon,minLat,maxLon,maxLat", required
//	filterDate - RFC3339 instant; only tiles claimed at or before it are returned
func (h *Handler) GetTilesInView(c *gin.Context) {
	box, err := parseBoundingBox(c.Query("bbox"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid bbox parameter", err.Error())
		return
	}

	var until *time.Time
	if raw := c.Query("filterDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid filterDate parameter", err.Error())
			return
		}
		until = &t
	}

	// In-flight LOCKED reservations render alongside settled tiles so the map
	// reflects claims the moment they are made
	statuses := []domain.TileStatus{
		domain.TileStatusLocked,
		domain.TileStatusPaid,
		domain.TileStatusProcessing,
		domain.TileStatusOwned,
	}

	found, err := h.store.GetTilesInBoundingBox(c.Request.Context(), box, statuses, nil, until)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, tileListResponse{Tiles: toTileDTOs(found)})
}

// GetUserTiles handles GET /tiles/user/:address
func (h *Handler) GetUserTiles(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondError(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required", "")
		return
	}

	found, err := h.store.GetTilesByOwner(c.Request.Context(), address)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, tileListResponse{Tiles: toTileDTOs(found)})
}

// GetTileMetadata handles GET /metadata/:cellId and serves the live NFT
// metadata document the minted token's URI points at
func (h *Handler) GetTileMetadata(c *gin.Context) {
	doc, err := h.orchestrator.MetadataDocument(c.Request.Context(), domain.CellID(c.Param("cellId")))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetAccountNFTs handles GET /nfts/:address and proxies the ledger's token
// listing for a wallet
func (h *Handler) GetAccountNFTs(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondError(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required", "")
		return
	}

	nfts, err := h.gateway.GetAccountNFTs(c.Request.Context(), address)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if nfts == nil {
		nfts = []ledger.NFToken{}
	}

	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}

// ProcessEscrows handles POST /cron/process-escrows and runs one maturation
// sweep synchronously, reporting per-tile outcomes
func (h *Handler) ProcessEscrows(c *gin.Context) {
	results, err := h.escrowSweep.RunOnce(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if results == nil {
		results = []sweeper.SweepResult{}
	}

	c.JSON(http.StatusOK, sweepResponse{
		Processed: len(results),
		Results:   results,
	})
}

// GetTileImage handles GET /images/:name and serves a tile image from the
// embedded pool
func (h *Handler) GetTileImage(c *gin.Context) {
	name := c.Param("name")
	for _, img := range h.images.Images() {
		if img.Name == name {
			c.Data(http.StatusOK, "image/svg+xml", img.Content)
			return
		}
	}
	respondError(c, http.StatusNotFound, ErrCodeTileNotFound, "image not found", "")
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	if _, err := h.store.CountTiles(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseBoundingBox parses a "minLon,minLat,maxLon,maxLat" viewport string
func parseBoundingBox(raw string) (domain.BoundingBox, error) {
	var box domain.BoundingBox
	if raw == "" {
		return box, domain.ErrInvalidBoundingBox
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return box, domain.ErrInvalidBoundingBox
	}

	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return box, domain.ErrInvalidBoundingBox
		}
		values[i] = v
	}

	box = domain.BoundingBox{
		MinLon: values[0],
		MinLat: values[1],
		MaxLon: values[2],
		MaxLat: values[3],
	}
	if !box.Valid() {
		return box, domain.ErrInvalidBoundingBox
	}
	return box, nil
}

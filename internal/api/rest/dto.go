package rest

import (
	"time"

	"github.com/hexearth/hexearth/internal/store/schema"
)

type lockTileRequest struct {
	CellID          string    `json:"cellId" binding:"required"`
	ClaimantAddress string    `json:"claimantAddress" binding:"required"`
	GameDate        time.Time `json:"gameDate" binding:"required"`
}

type confirmTileRequest struct {
	CellID          string `json:"cellId" binding:"required"`
	TransactionRef  string `json:"transactionRef" binding:"required"`
	ClaimantAddress string `json:"claimantAddress" binding:"required"`
}

type ownerDTO struct {
	Address string `json:"address"`
}

type tileDTO struct {
	ID        string                 `json:"id"`
	Lon       float64                `json:"lon"`
	Lat       float64                `json:"lat"`
	Status    string                 `json:"status"`
	Owner     ownerDTO               `json:"owner"`
	GameDate  time.Time              `json:"gameDate"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"createdAt"`
}

type lockTileResponse struct {
	Tile      tileDTO `json:"tile"`
	ImageHash string  `json:"imageHash"`
}

type confirmTileResponse struct {
	Tile     tileDTO `json:"tile"`
	Escrowed bool    `json:"escrowed"`
	Message  string  `json:"message,omitempty"`
}

type tileListResponse struct {
	Tiles []tileDTO `json:"tiles"`
}

type sweepResponse struct {
	Processed int         `json:"processed"`
	Results   interface{} `json:"results"`
}

func toTileDTO(t *schema.Tile) tileDTO {
	metadata := map[string]interface{}(t.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return tileDTO{
		ID:        t.ID,
		Lon:       t.Lon,
		Lat:       t.Lat,
		Status:    string(t.Status),
		Owner:     ownerDTO{Address: t.OwnerAddress},
		GameDate:  t.GameDate,
		Metadata:  metadata,
		CreatedAt: t.CreatedAt,
	}
}

func toTileDTOs(tiles []*schema.Tile) []tileDTO {
	out := make([]tileDTO, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, toTileDTO(t))
	}
	return out
}

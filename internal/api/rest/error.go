package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hexearth/hexearth/internal/domain"
	"github.com/hexearth/hexearth/internal/logger"
	"go.uber.org/zap"
)

// ErrorCode identifies a failure category in API responses
type ErrorCode string

const (
	ErrCodeBadRequest         ErrorCode = "bad_request"
	ErrCodeInvalidCellID      ErrorCode = "invalid_cell_id"
	ErrCodeTileTaken          ErrorCode = "tile_taken"
	ErrCodeTileNotFound       ErrorCode = "tile_not_found"
	ErrCodeTileAlreadyOwned   ErrorCode = "tile_already_owned"
	ErrCodeWalletMismatch     ErrorCode = "wallet_mismatch"
	ErrCodeInvalidTransaction ErrorCode = "invalid_transaction"
	ErrCodeInternal           ErrorCode = "internal_error"
)

type errorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code ErrorCode, message string, details string) {
	c.JSON(status, errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// respondDomainError maps domain sentinel errors onto stable HTTP statuses
// and reason codes. Unrecognized errors become opaque 500s.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCellID):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidCellID, "invalid cell identifier", "")
	case errors.Is(err, domain.ErrTileTaken):
		respondError(c, http.StatusConflict, ErrCodeTileTaken, "tile is already taken", "")
	case errors.Is(err, domain.ErrTileNotFound):
		respondError(c, http.StatusNotFound, ErrCodeTileNotFound, "tile not found", "")
	case errors.Is(err, domain.ErrTileAlreadyOwned):
		respondError(c, http.StatusConflict, ErrCodeTileAlreadyOwned, "tile is already owned", "")
	case errors.Is(err, domain.ErrWalletMismatch):
		respondError(c, http.StatusForbidden, ErrCodeWalletMismatch, "claimant wallet does not match tile lock", "")
	case errors.Is(err, domain.ErrInvalidTransaction):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidTransaction, "transaction does not satisfy payment requirements", "")
	default:
		logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", "")
	}
}

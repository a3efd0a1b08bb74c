package domain

import "errors"

var (
	// ErrTileTaken is returned when a lock is attempted on a cell that already has a record
	ErrTileTaken = errors.New("tile already taken")

	// ErrInvalidCellID is returned when a cell id does not parse to a valid cell
	ErrInvalidCellID = errors.New("invalid cell id")

	// ErrTileNotFound is returned when a confirm references a cell with no record
	ErrTileNotFound = errors.New("tile not found")

	// ErrTileAlreadyOwned is returned when a confirm targets a tile that is already settled
	ErrTileAlreadyOwned = errors.New("tile already owned")

	// ErrWalletMismatch is returned when the confirming address differs from the lock owner
	ErrWalletMismatch = errors.New("wallet mismatch")

	// ErrInvalidTransaction is returned when a transaction reference matches neither
	// the expected payment shape nor the expected escrow-creation shape
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInvalidBoundingBox is returned when a viewport query is malformed
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
)

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Plot errors
	ErrMsgPlotNotFound       = "plot not found"
	ErrMsgPlotLocked         = "plot is locked"
	ErrMsgPlotAlreadyPlanted = "plot is already planted"
	ErrMsgPlotNotPlanted     = "plot is not planted"
	ErrMsgPlotNotPlowed      = "plot is not plowed"

	// Crop errors
	ErrMsgCropNotFound  = "crop not found"
	ErrMsgCropNotMature = "crop is not mature"

	// Action errors
	ErrMsgActionNotFound      = "action not found"
	ErrMsgActionNotRepeatable = "action already performed"
	ErrMsgLevelRequired       = "player level too low"

	// Ledger errors
	ErrMsgInsufficientResources = "insufficient resources"
	ErrMsgInsufficientStock     = "insufficient stock"
	ErrMsgUnknownResource       = "unknown resource"

	// Market errors
	ErrMsgItemNotPriced = "item has no market price"

	// Livestock errors
	ErrMsgNotUnlocked       = "infrastructure not unlocked"
	ErrMsgCapacityExceeded  = "capacity exceeded"
	ErrMsgMaxLevel          = "already at maximum level"
	ErrMsgInsufficientFeed  = "nothing to feed"
	ErrMsgInsufficientInput = "insufficient input material"

	// Persistence errors
	ErrMsgSnapshotNotFound = "snapshot not found"
	ErrMsgSnapshotVersion  = "unsupported snapshot version"

	// Invariant violations - fatal programming errors, never clamped away
	ErrMsgNegativeStock   = "negative stock after mutation"
	ErrMsgClockRegression = "clock moved backward"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Plot errors
	ErrPlotNotFound       = errors.New(ErrMsgPlotNotFound)
	ErrPlotLocked         = errors.New(ErrMsgPlotLocked)
	ErrPlotAlreadyPlanted = errors.New(ErrMsgPlotAlreadyPlanted)
	ErrPlotNotPlanted     = errors.New(ErrMsgPlotNotPlanted)
	ErrPlotNotPlowed      = errors.New(ErrMsgPlotNotPlowed)

	// Crop errors
	ErrCropNotFound  = errors.New(ErrMsgCropNotFound)
	ErrCropNotMature = errors.New(ErrMsgCropNotMature)

	// Action errors
	ErrActionNotFound      = errors.New(ErrMsgActionNotFound)
	ErrActionNotRepeatable = errors.New(ErrMsgActionNotRepeatable)
	ErrLevelRequired       = errors.New(ErrMsgLevelRequired)

	// Ledger errors
	ErrInsufficientResources = errors.New(ErrMsgInsufficientResources)
	ErrInsufficientStock     = errors.New(ErrMsgInsufficientStock)
	ErrUnknownResource       = errors.New(ErrMsgUnknownResource)

	// Market errors
	ErrItemNotPriced = errors.New(ErrMsgItemNotPriced)

	// Livestock errors
	ErrNotUnlocked       = errors.New(ErrMsgNotUnlocked)
	ErrCapacityExceeded  = errors.New(ErrMsgCapacityExceeded)
	ErrMaxLevel          = errors.New(ErrMsgMaxLevel)
	ErrInsufficientFeed  = errors.New(ErrMsgInsufficientFeed)
	ErrInsufficientInput = errors.New(ErrMsgInsufficientInput)

	// Persistence errors
	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)
	ErrSnapshotVersion  = errors.New(ErrMsgSnapshotVersion)

	// Invariant violations
	ErrNegativeStock   = errors.New(ErrMsgNegativeStock)
	ErrClockRegression = errors.New(ErrMsgClockRegression)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

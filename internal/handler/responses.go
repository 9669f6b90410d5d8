package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ilerise/farmsim/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing left to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages derived from domain errors
const (
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgPlotNotFoundUser     = "Plot not found"
	ErrMsgPlotLockedUser       = "That plot is locked. Level up and buy it first"
	ErrMsgPlotAlreadyPlanted   = "That plot is already planted"
	ErrMsgPlotNotPlantedUser   = "Nothing is planted on that plot"
	ErrMsgPlotNotPlowedUser    = "Plow the plot before planting"
	ErrMsgCropNotFoundUser     = "Unknown crop"
	ErrMsgCropNotMatureUser    = "The crop is not ready to harvest yet"
	ErrMsgActionNotFoundUser   = "Unknown action"
	ErrMsgActionNotRepeatable  = "That action was already performed on this plot"
	ErrMsgLevelTooLowUser      = "Your level is too low for that"
	ErrMsgNotEnoughResources   = "Not enough resources"
	ErrMsgNotEnoughStock       = "Not enough stock to sell"
	ErrMsgItemNotPricedUser    = "That item is not traded on the market"
	ErrMsgNotUnlockedUser      = "Unlock that building first"
	ErrMsgCapacityExceededUser = "Not enough capacity"
	ErrMsgMaxLevelUser         = "Already at the maximum level"
	ErrMsgNothingToFeedUser    = "There are no animals to feed"
	ErrMsgNotEnoughInputUser   = "Not enough input material"
	ErrMsgInvalidInputUser     = "Invalid request. Please check your inputs"
	ErrMsgSnapshotNotFoundUser = "No saved game found"
	ErrMsgSnapshotVersionUser  = "Saved game uses an unsupported version"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes
// and user-friendly messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, ErrMsgPlotNotFoundUser
	case errors.Is(err, domain.ErrPlotLocked):
		return http.StatusForbidden, ErrMsgPlotLockedUser
	case errors.Is(err, domain.ErrPlotAlreadyPlanted):
		return http.StatusConflict, ErrMsgPlotAlreadyPlanted
	case errors.Is(err, domain.ErrPlotNotPlanted):
		return http.StatusConflict, ErrMsgPlotNotPlantedUser
	case errors.Is(err, domain.ErrPlotNotPlowed):
		return http.StatusConflict, ErrMsgPlotNotPlowedUser
	case errors.Is(err, domain.ErrCropNotFound):
		return http.StatusNotFound, ErrMsgCropNotFoundUser
	case errors.Is(err, domain.ErrCropNotMature):
		return http.StatusConflict, ErrMsgCropNotMatureUser
	case errors.Is(err, domain.ErrActionNotFound):
		return http.StatusNotFound, ErrMsgActionNotFoundUser
	case errors.Is(err, domain.ErrActionNotRepeatable):
		return http.StatusConflict, ErrMsgActionNotRepeatable
	case errors.Is(err, domain.ErrLevelRequired):
		return http.StatusForbidden, ErrMsgLevelTooLowUser
	case errors.Is(err, domain.ErrInsufficientResources):
		return http.StatusBadRequest, ErrMsgNotEnoughResources
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, ErrMsgNotEnoughStock
	case errors.Is(err, domain.ErrItemNotPriced):
		return http.StatusBadRequest, ErrMsgItemNotPricedUser
	case errors.Is(err, domain.ErrNotUnlocked):
		return http.StatusForbidden, ErrMsgNotUnlockedUser
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusBadRequest, ErrMsgCapacityExceededUser
	case errors.Is(err, domain.ErrMaxLevel):
		return http.StatusConflict, ErrMsgMaxLevelUser
	case errors.Is(err, domain.ErrInsufficientFeed):
		return http.StatusBadRequest, ErrMsgNothingToFeedUser
	case errors.Is(err, domain.ErrInsufficientInput):
		return http.StatusBadRequest, ErrMsgNotEnoughInputUser
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, ErrMsgSnapshotNotFoundUser
	case errors.Is(err, domain.ErrSnapshotVersion):
		return http.StatusConflict, ErrMsgSnapshotVersionUser
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputUser
	default:
		return http.StatusInternalServerError, ErrMsgUnknownError
	}
}

// respondServiceError maps a service error and writes the response
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

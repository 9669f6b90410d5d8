package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ilerise/farmsim/internal/logger"
)

// ExecuteActionRequest schedules a catalog action on a plot.
type ExecuteActionRequest struct {
	ActionID string `json:"action_id" validate:"required"`
	PlotID   int    `json:"plot_id" validate:"gte=0"`
	CropID   string `json:"crop_id"`
}

// HandleExecuteAction charges an action's cost and schedules its effects.
func HandleExecuteAction(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ExecuteActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode action request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		active, err := svc.ExecuteAction(r.Context(), req.ActionID, req.PlotID, req.CropID)
		if err != nil {
			log.Warn("Action rejected", "action_id", req.ActionID, "plot_id", req.PlotID, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Action scheduled", "action_id", req.ActionID, "plot_id", req.PlotID, "end_day", active.EndDay)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Action scheduled", Data: active})
	}
}

// HandleAvailableActions lists every catalog action with its availability
// for the plot named in the URL.
func HandleAvailableActions(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plotID, err := strconv.Atoi(chi.URLParam(r, "plotID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidPlotID)
			return
		}

		availability, err := svc.AvailableActions(plotID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: availability})
	}
}

// PlantCropRequest plants a crop on a plowed plot.
type PlantCropRequest struct {
	CropID string `json:"crop_id" validate:"required"`
	PlotID int    `json:"plot_id" validate:"gte=0"`
}

// HandlePlantCrop validates the crop and schedules planting.
func HandlePlantCrop(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PlantCropRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode plant request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		active, err := svc.PlantCrop(r.Context(), req.CropID, req.PlotID)
		if err != nil {
			log.Warn("Planting rejected", "crop_id", req.CropID, "plot_id", req.PlotID, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Crop planted", "crop_id", req.CropID, "plot_id", req.PlotID)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Crop planted", Data: active})
	}
}

// HarvestRequest harvests a mature plot.
type HarvestRequest struct {
	PlotID int `json:"plot_id" validate:"gte=0"`
}

// HandleHarvestPlot harvests immediately and returns the yield outcome.
func HandleHarvestPlot(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req HarvestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode harvest request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		outcome, err := svc.HarvestPlot(r.Context(), req.PlotID)
		if err != nil {
			log.Warn("Harvest rejected", "plot_id", req.PlotID, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Plot harvested",
			"plot_id", req.PlotID,
			"crop_id", outcome.CropID,
			"yield_tonnes", outcome.Yield,
			"stars", outcome.Result.Stars)
		respondJSON(w, http.StatusOK, DataResponse{Message: "Harvest complete", Data: outcome})
	}
}

// UnlockPlotRequest buys a locked plot.
type UnlockPlotRequest struct {
	PlotID int `json:"plot_id" validate:"gte=0"`
}

// HandleUnlockPlot unlocks a plot when level and money allow it.
func HandleUnlockPlot(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnlockPlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode unlock request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		if err := svc.UnlockPlot(r.Context(), req.PlotID); err != nil {
			log.Warn("Plot unlock rejected", "plot_id", req.PlotID, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Plot unlocked", "plot_id", req.PlotID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Plot unlocked"})
	}
}

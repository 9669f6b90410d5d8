package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/livestock"
	"github.com/ilerise/farmsim/internal/logger"
)

// FarmService is the surface of the simulation the HTTP layer depends on.
type FarmService interface {
	State() domain.FarmState
	SkipDay()
	TogglePause() bool
	SetSpeed(speed int) error
	Save(ctx context.Context) error
	Load(ctx context.Context) error

	ExecuteAction(ctx context.Context, actionID string, plotID int, cropID string) (domain.ActiveAction, error)
	AvailableActions(plotID int) (map[string]domain.Availability, error)
	PlantCrop(ctx context.Context, cropID string, plotID int) (domain.ActiveAction, error)
	HarvestPlot(ctx context.Context, plotID int) (domain.HarvestOutcome, error)
	UnlockPlot(ctx context.Context, plotID int) error

	BuyFromMarket(ctx context.Context, category domain.ResourceCategory, item string, quantity float64) (float64, error)
	SellToMarket(ctx context.Context, category domain.ResourceCategory, item string, quantity float64) (float64, error)
	MarketTrends() []domain.MarketTrend
	MarketHistory() []domain.PriceSnapshot

	UnlockBuilding(sp livestock.Species) error
	UpgradeBuilding(sp livestock.Species) error
	UnlockCompostPit() error
	BuyAnimals(sp livestock.Species, count int) error
	FeedAnimals(sp livestock.Species) error
	StartComposting(manureKg float64) error
	CollectMilk() float64
	LivestockState() domain.LivestockState
}

// HandleFarmState returns the aggregated farm view.
func HandleFarmState(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.State()})
	}
}

// HandleSkipDay advances the simulation to the next day.
func HandleSkipDay(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		svc.SkipDay()
		state := svc.State()
		log.Info("Day skipped", "day", state.Time.Day)

		respondJSON(w, http.StatusOK, DataResponse{Message: "Day advanced", Data: state.Time})
	}
}

// HandlePause toggles the simulation pause flag.
func HandlePause(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paused := svc.TogglePause()
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Pause toggled",
			Data:    map[string]bool{"is_paused": paused},
		})
	}
}

// SetSpeedRequest selects a simulation speed multiplier.
type SetSpeedRequest struct {
	Speed int `json:"speed" validate:"required,gt=0"`
}

// HandleSetSpeed changes the simulation speed.
func HandleSetSpeed(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetSpeedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode speed request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		if err := svc.SetSpeed(req.Speed); err != nil {
			log.Warn("Rejected speed change", "speed", req.Speed)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSpeed)
			return
		}

		log.Info("Speed changed", "speed", req.Speed)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Speed updated"})
	}
}

// HandleSave persists the farm to the configured stores.
func HandleSave(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := svc.Save(r.Context()); err != nil {
			log.Error("Save failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgSaveFailed)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Farm saved"})
	}
}

// HandleLoad restores the farm from the configured stores.
func HandleLoad(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := svc.Load(r.Context()); err != nil {
			log.Error("Load failed", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: "Farm loaded", Data: svc.State()})
	}
}

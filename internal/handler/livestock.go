package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ilerise/farmsim/internal/livestock"
	"github.com/ilerise/farmsim/internal/logger"
)

// SpeciesRequest names a herd for unlock, upgrade and feed operations.
type SpeciesRequest struct {
	Species string `json:"species" validate:"required,species"`
}

// BuyAnimalsRequest purchases animals for an unlocked building.
type BuyAnimalsRequest struct {
	Species string `json:"species" validate:"required,species"`
	Count   int    `json:"count" validate:"required,gt=0"`
}

// CompostRequest queues manure for composting.
type CompostRequest struct {
	ManureKg float64 `json:"manure_kg" validate:"required,gt=0"`
}

func decodeSpeciesRequest(w http.ResponseWriter, r *http.Request) (livestock.Species, bool) {
	log := logger.FromContext(r.Context())

	var req SpeciesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode species request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
		return "", false
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
		return "", false
	}

	return livestock.Species(req.Species), true
}

// HandleLivestockState returns herds, buildings and the compost queue.
func HandleLivestockState(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.LivestockState()})
	}
}

// HandleUnlockBuilding unlocks housing for a species.
func HandleUnlockBuilding(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sp, ok := decodeSpeciesRequest(w, r)
		if !ok {
			return
		}

		if err := svc.UnlockBuilding(sp); err != nil {
			log.Warn("Building unlock rejected", "species", sp, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Building unlocked", "species", sp)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Building unlocked"})
	}
}

// HandleUpgradeBuilding raises a building's capacity tier.
func HandleUpgradeBuilding(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sp, ok := decodeSpeciesRequest(w, r)
		if !ok {
			return
		}

		if err := svc.UpgradeBuilding(sp); err != nil {
			log.Warn("Building upgrade rejected", "species", sp, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Building upgraded", "species", sp)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Building upgraded"})
	}
}

// HandleBuyAnimals purchases animals up to building capacity.
func HandleBuyAnimals(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyAnimalsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode buy animals request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		if err := svc.BuyAnimals(livestock.Species(req.Species), req.Count); err != nil {
			log.Warn("Animal purchase rejected", "species", req.Species, "count", req.Count, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Animals purchased", "species", req.Species, "count", req.Count)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Animals purchased"})
	}
}

// HandleFeedAnimals refills a herd's feed.
func HandleFeedAnimals(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sp, ok := decodeSpeciesRequest(w, r)
		if !ok {
			return
		}

		if err := svc.FeedAnimals(sp); err != nil {
			log.Warn("Feeding rejected", "species", sp, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Animals fed"})
	}
}

// HandleUnlockCompostPit unlocks manure composting.
func HandleUnlockCompostPit(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := svc.UnlockCompostPit(); err != nil {
			log.Warn("Compost pit unlock rejected", "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Compost pit unlocked")
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Compost pit unlocked"})
	}
}

// HandleStartComposting queues manure for conversion to fertilizer.
func HandleStartComposting(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CompostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode compost request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
			return
		}

		if err := svc.StartComposting(req.ManureKg); err != nil {
			log.Warn("Composting rejected", "manure_kg", req.ManureKg, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Composting started", "manure_kg", req.ManureKg)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Composting started"})
	}
}

// HandleCollectMilk moves accumulated milk into the ledger.
func HandleCollectMilk(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collected := svc.CollectMilk()
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Milk collected",
			Data:    map[string]float64{"liters": collected},
		})
	}
}

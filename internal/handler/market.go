package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/logger"
)

// TradeRequest buys or sells a quantity of a market item.
type TradeRequest struct {
	Category string  `json:"category" validate:"required"`
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
}

// TradeResponse reports the money moved by a trade.
type TradeResponse struct {
	Category string  `json:"category"`
	Item     string  `json:"item,omitempty"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

func decodeTradeRequest(w http.ResponseWriter, r *http.Request) (TradeRequest, bool) {
	log := logger.FromContext(r.Context())

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode trade request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidJSON)
		return req, false
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": FormatValidationError(err)})
		return req, false
	}

	return req, true
}

// HandleMarketBuy purchases stock at the current market price.
func HandleMarketBuy(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeTradeRequest(w, r)
		if !ok {
			return
		}

		total, err := svc.BuyFromMarket(r.Context(), domain.ResourceCategory(req.Category), req.Item, req.Quantity)
		if err != nil {
			log.Warn("Market buy rejected", "category", req.Category, "item", req.Item, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Market buy", "category", req.Category, "item", req.Item, "quantity", req.Quantity, "total", total)
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Purchase complete",
			Data:    TradeResponse{Category: req.Category, Item: req.Item, Quantity: req.Quantity, Total: total},
		})
	}
}

// HandleMarketSell sells stock at the current market price.
func HandleMarketSell(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeTradeRequest(w, r)
		if !ok {
			return
		}

		total, err := svc.SellToMarket(r.Context(), domain.ResourceCategory(req.Category), req.Item, req.Quantity)
		if err != nil {
			log.Warn("Market sell rejected", "category", req.Category, "item", req.Item, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Market sell", "category", req.Category, "item", req.Item, "quantity", req.Quantity, "total", total)
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Sale complete",
			Data:    TradeResponse{Category: req.Category, Item: req.Item, Quantity: req.Quantity, Total: total},
		})
	}
}

// HandleMarketTrends returns current prices with their recent direction.
func HandleMarketTrends(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.MarketTrends()})
	}
}

// HandleMarketHistory returns the recorded price snapshots, oldest first.
func HandleMarketHistory(svc FarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.MarketHistory()})
	}
}

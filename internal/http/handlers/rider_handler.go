// README: Rider lifecycle handlers (add_rider, rider_cancel).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchd/internal/modules/matching"
	"matchd/internal/types"
)

type RiderHandler struct {
	engine *matching.Engine
}

func NewRiderHandler(engine *matching.Engine) *RiderHandler {
	return &RiderHandler{engine: engine}
}

type addRiderRequest struct {
	ID  int64   `json:"id"`
	Bid int64   `json:"bid" binding:"gt=0"`
	Lat float64 `json:"lat" binding:"latitude"`
	Lon float64 `json:"lon" binding:"longitude"`
}

func (h *RiderHandler) Add(c *gin.Context) {
	var req addRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	loc := types.Point{Lat: req.Lat, Lon: req.Lon}
	bid := types.Money{Amount: req.Bid, Currency: "USD"}
	if err := h.engine.AddRider(types.ID(req.ID), bid, loc); err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"id": req.ID})
}

func (h *RiderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.engine.RiderCancel(id); err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "cancelled"})
}

// README: Driver lifecycle handlers (add_driver, driver_accept, driver_cancel).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchd/internal/modules/matching"
	"matchd/internal/types"
)

type DriverHandler struct {
	engine *matching.Engine
}

func NewDriverHandler(engine *matching.Engine) *DriverHandler {
	return &DriverHandler{engine: engine}
}

type addDriverRequest struct {
	ID  int64   `json:"id"`
	Ask int64   `json:"ask" binding:"gt=0"`
	Lat float64 `json:"lat" binding:"latitude"`
	Lon float64 `json:"lon" binding:"longitude"`
}

func (h *DriverHandler) Add(c *gin.Context) {
	var req addDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	loc := types.Point{Lat: req.Lat, Lon: req.Lon}
	ask := types.Money{Amount: req.Ask, Currency: "USD"}
	if err := h.engine.AddDriver(types.ID(req.ID), ask, loc); err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"id": req.ID})
}

type acceptRequest struct {
	RiderID int64 `json:"rider_id"`
}

func (h *DriverHandler) Accept(c *gin.Context) {
	driverID, err := parseIDParam(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req acceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.engine.DriverAccept(driverID, types.ID(req.RiderID)); err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "matched"})
}

func (h *DriverHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.engine.DriverCancel(id); err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "cancelled"})
}

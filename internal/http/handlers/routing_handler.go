// README: Routing control surface: route cost queries and the three
// update_edge overloads.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matchd/internal/routing"
)

type RoutingHandler struct {
	engine *routing.Engine
}

func NewRoutingHandler(engine *routing.Engine) *RoutingHandler {
	return &RoutingHandler{engine: engine}
}

func (h *RoutingHandler) Route(c *gin.Context) {
	lat1, err1 := strconv.ParseFloat(c.Query("lat1"), 64)
	lon1, err2 := strconv.ParseFloat(c.Query("lon1"), 64)
	lat2, err3 := strconv.ParseFloat(c.Query("lat2"), 64)
	lon2, err4 := strconv.ParseFloat(c.Query("lon2"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		writeError(c, http.StatusBadRequest, "lat1, lon1, lat2, lon2 are required numeric query parameters")
		return
	}
	cost := h.engine.Route(lat1, lon1, lat2, lon2)
	writeJSON(c, http.StatusOK, map[string]any{"cost_seconds": cost})
}

type updateEdgeByIDRequest struct {
	Weight float64 `json:"weight" binding:"gt=0"`
}

func (h *RoutingHandler) UpdateByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid edge id")
		return
	}
	var req updateEdgeByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.engine.UpdateEdgeByID(id, req.Weight)
	writeJSON(c, http.StatusOK, map[string]any{"status": "updated"})
}

type updateEdgeByNodesRequest struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight" binding:"gt=0"`
}

func (h *RoutingHandler) UpdateByNodes(c *gin.Context) {
	var req updateEdgeByNodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.engine.UpdateEdgeByEndpoints(req.From, req.To, req.Weight)
	writeJSON(c, http.StatusOK, map[string]any{"status": "updated"})
}

type updateEdgeByCoordinateRequest struct {
	Lat       float64 `json:"lat" binding:"latitude"`
	Lon       float64 `json:"lon" binding:"longitude"`
	Weight    float64 `json:"weight" binding:"required,gt=0"`
	Direction string  `json:"direction"`
}

func (h *RoutingHandler) UpdateByCoordinate(c *gin.Context) {
	var req updateEdgeByCoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	dir := routing.ParseDirection(req.Direction)
	h.engine.UpdateEdgeByCoordinate(req.Lat, req.Lon, req.Weight, dir)
	writeJSON(c, http.StatusOK, map[string]any{"status": "updated"})
}

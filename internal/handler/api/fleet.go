package api

import (
	"net/http"

	resdto "fleetbook/internal/handler/dto/response"
	"fleetbook/internal/handler/httperr"
	"fleetbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type FleetHandler struct {
	fleetQueries queries.FleetQueries
}

func NewFleetHandler(fleetQueries queries.FleetQueries) *FleetHandler {
	return &FleetHandler{fleetQueries: fleetQueries}
}

// @Summary List vehicles
// @Description List the rental fleet; served from cache when warm
// @Tags fleet
// @Produce json
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles [get]
func (h *FleetHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.fleetQueries.ListVehicles(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load vehicles", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleViews(vehicles))
}

package response

import (
	"time"

	"fleetbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID        uuid.UUID `json:"id"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromVehicleViews(views []*queries.VehicleView) []*VehicleResponse {
	responses := make([]*VehicleResponse, len(views))
	for i, view := range views {
		var resp VehicleResponse
		_ = copier.Copy(&resp, view)
		responses[i] = &resp
	}
	return responses
}

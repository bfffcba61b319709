package update_reservation_status

import (
	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(caller domain.Caller) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Caller: caller,
		Status: r.Status,
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// Request модели

// ListReservationsRequest запрос на список бронирований
// Date и (Year, Month) взаимоисключающие, приоритет у Date
type ListReservationsRequest struct {
	Date             string `json:"date,omitempty"`  // "2025-03-10"
	Year             int    `json:"year,omitempty"`  // Вместе с Month
	Month            int    `json:"month,omitempty"` // 1..12
	LaboratoryID     *int64 `json:"laboratoryId,omitempty"`
	IncludeCancelled bool   `json:"includeCancelled,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Caller domain.Caller `json:"-"`
	Status string        `json:"status"`
}

// Response модели

// ReservationResponse бронирование в ответах API
type ReservationResponse struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"ownerId"`
	Date         string `json:"date"`    // "2025-03-10"
	Weekday      string `json:"weekday"` // Вычисляется из Date
	Block        int    `json:"block"`
	SubBlock     string `json:"subBlock"`
	BlockType    string `json:"blockType"`
	Course       string `json:"course"`
	Subject      string `json:"subject"`
	Teacher      string `json:"teacher"`
	LaboratoryID int64  `json:"laboratoryId"`
	Laboratory   string `json:"laboratory"`
	Status       string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Date:         r.Date.Format(domain.DateFormat),
		Weekday:      r.Weekday(),
		Block:        r.Block,
		SubBlock:     string(r.SubBlock),
		BlockType:    string(r.BlockType),
		Course:       r.Course,
		Subject:      r.Subject,
		Teacher:      r.Teacher,
		LaboratoryID: r.LaboratoryID,
		Laboratory:   r.LaboratoryName,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}
	resp.Total = len(resp.Reservations)

	return resp
}

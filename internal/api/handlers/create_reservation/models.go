package create_reservation

import (
	createReservationUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
// weekday от клиента не читается: он вычисляется из date
type CreateReservationRequest struct {
	Date         string `json:"date"`
	Block        int    `json:"block"`
	SubBlock     string `json:"subBlock"`
	BlockType    string `json:"blockType"`
	Course       string `json:"course"`
	Subject      string `json:"subject"`
	Teacher      string `json:"teacher"`
	Laboratory   string `json:"laboratory"`
	LaboratoryID int64  `json:"laboratoryId"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateReservationRequest) ToUseCaseRequest(ownerID int64) *createReservationUC.Request {
	return &createReservationUC.Request{
		OwnerID:      ownerID,
		Date:         r.Date,
		Block:        r.Block,
		SubBlock:     r.SubBlock,
		BlockType:    r.BlockType,
		Course:       r.Course,
		Subject:      r.Subject,
		Teacher:      r.Teacher,
		Laboratory:   r.Laboratory,
		LaboratoryID: r.LaboratoryID,
	}
}

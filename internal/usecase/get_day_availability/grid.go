package get_day_availability

import (
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// buildGrid раскладывает активные бронирования дня по координатам
// Отменённые бронирования координаты не занимают
func buildGrid(date time.Time, reservations []*domain.Reservation) []Block {
	blocks := make([]Block, 0, domain.MaxBlock-domain.MinBlock+1)

	for b := domain.MinBlock; b <= domain.MaxBlock; b++ {
		blocks = append(blocks, Block{
			Block:      b,
			FirstHour:  stateOf(date, b, domain.SubBlockFirstHour, reservations),
			SecondHour: stateOf(date, b, domain.SubBlockSecondHour, reservations),
		})
	}

	return blocks
}

func stateOf(date time.Time, block int, sb domain.SubBlock, reservations []*domain.Reservation) SlotState {
	for _, r := range reservations {
		if r.Occupies(date, block, sb) {
			id := r.ID
			return SlotState{Available: false, ReservationID: &id}
		}
	}
	return SlotState{Available: true}
}

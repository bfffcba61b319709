package check_availability

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	checkAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/check_availability"
)

// ToUseCaseRequest разбирает query параметры: date, block, subBlock, blockType, weekday
func ToUseCaseRequest(q url.Values) (*checkAvailabilityUC.Request, error) {
	raw := q.Get("block")
	if raw == "" {
		return nil, errors.New("параметр block обязателен")
	}
	block, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("некорректный параметр block: %q", raw)
	}

	return &checkAvailabilityUC.Request{
		Date:      q.Get("date"),
		Block:     block,
		SubBlock:  q.Get("subBlock"),
		BlockType: q.Get("blockType"),
		Weekday:   q.Get("weekday"),
	}, nil
}

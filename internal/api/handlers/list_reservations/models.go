package list_reservations

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
)

// ToServiceRequest разбирает query параметры: date, year, month, laboratoryId, includeCancelled
func ToServiceRequest(q url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		Date: q.Get("date"),
	}

	var err error
	if req.Year, err = optionalInt(q, "year"); err != nil {
		return nil, err
	}
	if req.Month, err = optionalInt(q, "month"); err != nil {
		return nil, err
	}

	if raw := q.Get("laboratoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("некорректный параметр laboratoryId: %q", raw)
		}
		req.LaboratoryID = &id
	}

	if raw := q.Get("includeCancelled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("некорректный параметр includeCancelled: %q", raw)
		}
		req.IncludeCancelled = v
	}

	return req, nil
}

func optionalInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("некорректный параметр %s: %q", key, raw)
	}
	return v, nil
}

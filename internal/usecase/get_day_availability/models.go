package get_day_availability

// Request модель запроса сетки занятости на день
type Request struct {
	Date string // "2025-03-10"
}

// Response сетка занятости учебного дня: 5 блоков по 2 полублока
type Response struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Blocks  []Block `json:"blocks"`
}

// Block занятость одного блока
type Block struct {
	Block      int       `json:"block"`
	FirstHour  SlotState `json:"firstHour"`
	SecondHour SlotState `json:"secondHour"`
}

// SlotState занятость одного полублока
type SlotState struct {
	Available     bool   `json:"available"`
	ReservationID *int64 `json:"reservationId,omitempty"`
}

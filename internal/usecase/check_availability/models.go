package check_availability

// Request модель запроса проверки доступности
// Нужен SubBlock или BlockType. Weekday принимается для совместимости и не участвует в проверке
type Request struct {
	Date      string // "2025-03-10"
	Block     int    // 1..5
	SubBlock  string // "1st-hour" | "2nd-hour"
	BlockType string // Опционально: "full" | "firstHour" | "secondHour"
	Weekday   string // Игнорируется
}

// Response результат проверки
type Response struct {
	Date                     string   `json:"date"`
	Weekday                  string   `json:"weekday"`
	Block                    int      `json:"block"`
	SubBlocks                []string `json:"subBlocks"` // Проверенные полублоки
	Available                bool     `json:"available"`
	ConflictingReservationID *int64   `json:"conflictingReservationId,omitempty"`
}

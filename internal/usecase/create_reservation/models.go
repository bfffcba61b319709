package create_reservation

// Request модель запроса на создание бронирования
// День недели от клиента не принимается: он всегда вычисляется из Date
type Request struct {
	OwnerID      int64  // ID автора (из токена)
	Date         string // "2025-03-10"
	Block        int    // 1..5
	SubBlock     string // "1st-hour" | "2nd-hour", для full игнорируется
	BlockType    string // "full" | "firstHour" | "secondHour"
	Course       string
	Subject      string
	Teacher      string
	Laboratory   string // Имя лаборатории (без учёта регистра)
	LaboratoryID int64  // Приоритетнее имени, если > 0
}

package domain

// GeneralStats агрегированные показатели для главной страницы
type GeneralStats struct {
	TotalReservations  int
	TodayReservations  int
	ActiveTeachers     int
	ActiveLaboratories int
}

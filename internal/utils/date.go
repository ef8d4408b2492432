package utils

import (
	"math"
	"time"
)

// DaysInMonth возвращает количество дней в месяце с учетом високосных лет
func DaysInMonth(year int, month time.Month) int {
	// нулевой день следующего месяца - последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween считает количество календарных дней от a до b, обе даты ожидаются в полночь
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

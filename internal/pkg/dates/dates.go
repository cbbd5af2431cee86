// Package dates содержит календарную арифметику для кэш-окна расписания.
package dates

import "time"

// StartOfDay начало суток для указанной даты
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay конец суток для указанной даты
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// WeekBounds границы учебной недели: понедельник — суббота.
// Воскресенье относится к прошедшей неделе, не к следующей.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // time.Sunday == 0, а неделя начинается с понедельника
	}
	monday := StartOfDay(t.AddDate(0, 0, -(weekday - 1)))
	saturday := EndOfDay(monday.AddDate(0, 0, 5))
	return monday, saturday
}

// MonthWindow границы кэш-окна: с первого дня прошлого месяца
// по последний день следующего месяца относительно reference.
func MonthWindow(reference time.Time) (time.Time, time.Time) {
	start := time.Date(reference.Year(), reference.Month()-1, 1, 0, 0, 0, 0, reference.Location())
	// День 0 месяца M+2 нормализуется в последний день месяца M+1
	lastDay := time.Date(reference.Year(), reference.Month()+2, 0, 0, 0, 0, 0, reference.Location())
	return start, EndOfDay(lastDay)
}

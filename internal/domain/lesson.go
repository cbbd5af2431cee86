package domain

import "time"

// SubgroupAll подгруппа 0, пара идёт у всей группы целиком
const SubgroupAll = 0

// Lesson одна пара в расписании группы
// Date хранит календарный день, BeginTime/EndTime время в формате HH:MM
type Lesson struct {
	ID           int64     `db:"id"`
	GroupID      int64     `db:"group_id"`
	Date         time.Time `db:"date"`
	Subgroup     int       `db:"subgroup"`
	BeginTime    string    `db:"begin_time"`
	EndTime      string    `db:"end_time"`
	Discipline   string    `db:"discipline"`
	KindOfWork   string    `db:"kind_of_work"`
	Auditorium   string    `db:"auditorium"`
	Lecturer     string    `db:"lecturer"`
	LecturerRank string    `db:"lecturer_rank"`
	UpdateTime   time.Time `db:"update_time"`
}

// ForSubgroup true, если пара видна указанной подгруппе
func (l *Lesson) ForSubgroup(subgroup int) bool {
	return l.Subgroup == SubgroupAll || l.Subgroup == subgroup
}

package ruzapi

// SearchResult один результат поиска группы в РУЗ
type SearchResult struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// SubGroupRef ссылка на подгруппу в сыром ответе апстрима.
// Номер подгруппы — последний символ поля Subgroup ("ИС221/1" -> 1).
type SubGroupRef struct {
	Subgroup string `json:"subgroup"`
}

// RawLesson сырая запись пары из ответа РУЗ
type RawLesson struct {
	Date          string        `json:"date"` // YYYY-MM-DD
	BeginLesson   string        `json:"beginLesson"`
	EndLesson     string        `json:"endLesson"`
	Discipline    string        `json:"discipline"`
	KindOfWork    string        `json:"kindOfWork"`
	Auditorium    string        `json:"auditorium"`
	LecturerTitle string        `json:"lecturer_title"`
	LecturerRank  string        `json:"lecturer_rank"`
	ListSubGroups []SubGroupRef `json:"listSubGroups"`
}

package domain

// Group учебная группа, идентификатор приходит из апстрима РУЗ
type Group struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// GroupMatch результат поиска группы по имени в апстриме
type GroupMatch struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

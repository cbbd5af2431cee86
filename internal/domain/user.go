package domain

import "database/sql"

// User пользователь бота, ключ — Telegram user id
// Subgroup NULL пока пользователь не выбрал подгруппу
type User struct {
	ID        int64         `db:"id"`
	GroupID   int64         `db:"group_id"`
	GroupName string        `db:"group_name"`
	Subgroup  sql.NullInt64 `db:"sub_group"`
}

// HasSubgroup true, если подгруппа уже настроена
func (u *User) HasSubgroup() bool {
	return u.Subgroup.Valid
}

// SubgroupOrZero номер подгруппы, 0 если не настроена
func (u *User) SubgroupOrZero() int {
	if !u.Subgroup.Valid {
		return 0
	}
	return int(u.Subgroup.Int64)
}

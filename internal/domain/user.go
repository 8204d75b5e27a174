package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User — автор рецептов и владелец коллекций (избранное, корзина, подписки).
// Регистрация и смена пароля живут вне этого сервиса.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	FirstName    string    `json:"first_name" gorm:"size:150;not null;default:''"`
	LastName     string    `json:"last_name" gorm:"size:150;not null;default:''"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName возвращает имя таблицы в БД
func (User) TableName() string {
	return "users"
}

package user

import "foodgram/internal/domain"

// Profile — публичное представление пользователя. IsSubscribed считается
// относительно того, кто смотрит.
type Profile struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func NewProfile(u *domain.User, subscribed bool) Profile {
	if u == nil {
		return Profile{}
	}
	return Profile{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

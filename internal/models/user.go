package models

import "time"

const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

// 회원 사용자 모델
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Age          *int      `json:"age,omitempty"`
	Country      string    `json:"country,omitempty" gorm:"size:100"`
	GoogleID     *string   `json:"-" gorm:"uniqueIndex;size:64"`
	Picture      string    `json:"picture,omitempty" gorm:"size:512"`
	AuthProvider string    `json:"auth_provider" gorm:"size:16;not null;default:email"`
	CreatedAt    time.Time `json:"created_at"`
}

// 외부에 노출되는 프로필
type UserProfile struct {
	ID           string    `json:"id" example:"6f1c2a4e-8d0b-4a43-9c53-2f7c1c1d9a10"`
	Email        string    `json:"email" example:"jane@healprint.xyz"`
	Name         string    `json:"name" example:"Jane"`
	Age          *int      `json:"age,omitempty" example:"29"`
	Country      string    `json:"country,omitempty" example:"KR"`
	Picture      string    `json:"picture,omitempty"`
	AuthProvider string    `json:"auth_provider" example:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) Profile() UserProfile {
	return UserProfile{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Age:          u.Age,
		Country:      u.Country,
		Picture:      u.Picture,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}

// HasPassword false for accounts created through Google sign-in.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

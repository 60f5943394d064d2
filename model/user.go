package model

import "time"

type User struct {
	DTO
	Name         string      `gorm:"size:120;not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Radio        string      `gorm:"size:120;not null" json:"radio"`
	Active       bool        `gorm:"not null;default:true" json:"active"`
	Promotions   []Promotion `gorm:"foreignKey:UserId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"promotions,omitempty"`
}

type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Radio    string `json:"radio" validate:"required,min=2,max=120"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Radio    *string `json:"radio" validate:"omitempty,min=2,max=120"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type PasswordResetToken struct {
	DTO
	UserId    uint      `gorm:"not null" json:"userId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	User      User      `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

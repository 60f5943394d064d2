package model

import "time"

type Promotion struct {
	DTO
	Name         string        `gorm:"size:150;not null" json:"name"`
	Slug         string        `gorm:"size:170;uniqueIndex;not null" json:"slug"`
	Description  *string       `gorm:"type:text" json:"description"`
	StartDate    time.Time     `gorm:"type:date;not null" json:"startDate"`
	EndDate      time.Time     `gorm:"type:date;not null" json:"endDate"`
	Status       string        `gorm:"size:20;not null;default:inactive" json:"status"`
	BannerUrl    *string       `json:"bannerUrl"`
	UserId       uint          `gorm:"not null;index" json:"userId"`
	User         *User         `gorm:"foreignKey:UserId" json:"user,omitempty"`
	Participants []Participant `gorm:"foreignKey:PromotionId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"participants,omitempty"`
	Draws        []Draw        `gorm:"foreignKey:PromotionId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"draws,omitempty"`
}

type CreatePromotionInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitempty,oneof=inactive active closed"`
}

type UpdatePromotionInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=150"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	StartDate   *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitempty,oneof=inactive active closed"`
}

// UpdatePromotionPatch é o input já convertido (datas parseadas),
// montado pelo middleware de validação.
type UpdatePromotionPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
}

type PromotionFilter struct {
	Pagination
	Status *string `json:"status"`
}

type PromotionWithCount struct {
	Promotion
	ParticipantsCount int64 `json:"participantsCount"`
	DrawsCount        int64 `json:"drawsCount"`
}

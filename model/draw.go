package model

import "time"

type Draw struct {
	DTO
	PromotionId uint       `gorm:"not null;index" json:"promotionId"`
	ScheduledAt time.Time  `gorm:"not null" json:"scheduledAt"`
	Description *string    `gorm:"type:text" json:"description"`
	Promotion   *Promotion `gorm:"foreignKey:PromotionId" json:"promotion,omitempty"`
	Winners     []Winner   `gorm:"foreignKey:DrawId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"winners,omitempty"`
}

type CreateDrawInput struct {
	PromotionId uint    `json:"promotionId" validate:"required"`
	ScheduledAt string  `json:"scheduledAt" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type UpdateDrawInput struct {
	ScheduledAt *string `json:"scheduledAt" validate:"omitempty"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type UpdateDrawPatch struct {
	ScheduledAt *time.Time
	Description *string
}

type ExecuteDrawInput struct {
	Quantity int `json:"quantity"`
}

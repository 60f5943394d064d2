package model

type Participant struct {
	DTO
	PromotionId uint       `gorm:"not null;uniqueIndex:uq_participant_promotion_phone" json:"promotionId"`
	Name        string     `gorm:"size:150;not null" json:"name"`
	Phone       string     `gorm:"size:30;not null;uniqueIndex:uq_participant_promotion_phone" json:"phone"`
	Cpf         *string    `gorm:"size:20" json:"cpf"`
	Email       *string    `gorm:"size:150" json:"email"`
	Promotion   *Promotion `gorm:"foreignKey:PromotionId" json:"promotion,omitempty"`
	Winners     []Winner   `gorm:"foreignKey:ParticipantId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type CreateParticipantInput struct {
	PromotionId uint    `json:"promotionId" validate:"required"`
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Phone       string  `json:"phone" validate:"required,min=8,max=30"`
	Cpf         *string `json:"cpf" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

type UpdateParticipantInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=150"`
	Phone *string `json:"phone" validate:"omitempty,min=8,max=30"`
	Cpf   *string `json:"cpf" validate:"omitempty,max=20"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ParticipantFilter struct {
	Pagination
	SearchKey string `json:"searchKey"`
}

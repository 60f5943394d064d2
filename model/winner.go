package model

import "time"

// Winner é criado exclusivamente pela execução de um sorteio,
// nunca por endpoint direto.
type Winner struct {
	DTO
	DrawId        uint         `gorm:"not null;uniqueIndex:uq_winner_draw_participant" json:"drawId"`
	ParticipantId uint         `gorm:"not null;uniqueIndex:uq_winner_draw_participant" json:"participantId"`
	Draw          *Draw        `gorm:"foreignKey:DrawId" json:"-"`
	Participant   *Participant `gorm:"foreignKey:ParticipantId" json:"participant,omitempty"`
}

// WinnerWithParticipant é a resposta enriquecida da execução,
// na ordem em que os ganhadores foram sorteados (1º, 2º, ...).
type WinnerWithParticipant struct {
	ID            uint        `json:"id"`
	DrawId        uint        `json:"drawId"`
	ParticipantId uint        `json:"participantId"`
	CreatedAt     time.Time   `json:"createdAt"`
	Participant   Participant `json:"participant"`
}

package helper

import (
	"errors"

	"sortear_api/model"

	"gorm.io/gorm"
)

// Cadeia de posse: User → Promotion → {Participant, Draw} → Winner.
// Toda leitura/escrita fora de User passa por aqui antes de tocar o alvo.
//
// ErrNotOwned cobre tanto "não existe" quanto "pertence a outro usuário";
// os dois casos respondem 404 com a mesma mensagem, para não revelar
// dados de outras contas por enumeração de ids.
var ErrNotOwned = errors.New("recurso não encontrado ou sem permissão")

type OwnedKind string

const (
	KindPromotion   OwnedKind = "promotion"
	KindParticipant OwnedKind = "participant"
	KindDraw        OwnedKind = "draw"
	KindWinner      OwnedKind = "winner"
)

// ResolveOwningPromotion resolve, em uma única consulta, a promoção dona
// de uma entidade e confere a posse do chamador. Existência e posse nunca
// são verificadas em passos separados.
func ResolveOwningPromotion(db *gorm.DB, userId uint, kind OwnedKind, entityId uint) (*model.Promotion, error) {
	q := db.Model(&model.Promotion{}).Where("promotions.user_id = ?", userId)

	switch kind {
	case KindPromotion:
		q = q.Where("promotions.id = ?", entityId)
	case KindParticipant:
		q = q.Joins("JOIN participants ON participants.promotion_id = promotions.id").
			Where("participants.id = ?", entityId)
	case KindDraw:
		q = q.Joins("JOIN draws ON draws.promotion_id = promotions.id").
			Where("draws.id = ?", entityId)
	case KindWinner:
		q = q.Joins("JOIN draws ON draws.promotion_id = promotions.id").
			Joins("JOIN winners ON winners.draw_id = draws.id").
			Where("winners.id = ?", entityId)
	default:
		return nil, ErrNotOwned
	}

	var promotion model.Promotion
	if err := q.First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwned
		}
		return nil, err
	}
	return &promotion, nil
}

// OwnedPromotion carrega a promoção somente se pertencer ao chamador.
func OwnedPromotion(db *gorm.DB, userId uint, promotionId uint) (*model.Promotion, error) {
	var promotion model.Promotion
	err := db.Where("promotions.id = ? AND promotions.user_id = ?", promotionId, userId).
		First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwned
		}
		return nil, err
	}
	return &promotion, nil
}

// OwnedParticipant carrega o participante via join com a promoção do chamador.
func OwnedParticipant(db *gorm.DB, userId uint, participantId uint) (*model.Participant, error) {
	var participant model.Participant
	err := db.Joins("JOIN promotions ON promotions.id = participants.promotion_id").
		Where("participants.id = ? AND promotions.user_id = ?", participantId, userId).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwned
		}
		return nil, err
	}
	return &participant, nil
}

// OwnedDraw carrega o sorteio via join com a promoção do chamador.
func OwnedDraw(db *gorm.DB, userId uint, drawId uint) (*model.Draw, error) {
	var draw model.Draw
	err := db.Joins("JOIN promotions ON promotions.id = draws.promotion_id").
		Where("draws.id = ? AND promotions.user_id = ?", drawId, userId).
		First(&draw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwned
		}
		return nil, err
	}
	return &draw, nil
}

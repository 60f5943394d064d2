package helper

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"sortear_api/model"

	"gorm.io/gorm"
)

var (
	ErrDrawExecuted       = errors.New("sorteio já executado")
	ErrDrawNoParticipants = errors.New("promoção sem participantes")
)

// NewDrawSource cria a fonte de aleatoriedade padrão da produção.
// Os testes injetam uma fonte com seed fixa.
func NewDrawSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ExecuteDraw executa um sorteio no máximo uma vez: dentro de uma única
// transação, trava a linha do sorteio, reconfere que ele ainda não tem
// ganhadores e grava todos os ganhadores de uma vez. Duas execuções
// concorrentes do mesmo sorteio serializam na trava; a que perder a
// corrida revê a contagem e recebe ErrDrawExecuted. O índice único
// (draw_id, participant_id) é a última barreira caso a trava falhe.
//
// quantity é sempre aceito: valores não positivos viram 1 e valores acima
// do total de participantes são limitados ao total.
func ExecuteDraw(db *gorm.DB, rng *rand.Rand, userId uint, drawId uint, quantity int) ([]model.WinnerWithParticipant, error) {
	var results []model.WinnerWithParticipant

	err := db.Transaction(func(tx *gorm.DB) error {
		draw, err := OwnedDraw(tx, userId, drawId)
		if err != nil {
			return err
		}

		// O update serializa execuções concorrentes do mesmo sorteio
		// (row lock no postgres); a contagem abaixo só roda depois que
		// qualquer execução anterior tiver sido confirmada.
		if err := tx.Model(&model.Draw{}).Where("id = ?", draw.ID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var winnerCount int64
		if err := tx.Model(&model.Winner{}).Where("draw_id = ?", draw.ID).
			Count(&winnerCount).Error; err != nil {
			return err
		}
		if winnerCount > 0 {
			return ErrDrawExecuted
		}

		var participants []model.Participant
		if err := tx.Where("promotion_id = ?", draw.PromotionId).
			Find(&participants).Error; err != nil {
			return err
		}
		if len(participants) == 0 {
			return ErrDrawNoParticipants
		}

		if quantity < 1 {
			quantity = 1
		}
		if quantity > len(participants) {
			quantity = len(participants)
		}

		// Amostragem uniforme sem reposição: os primeiros k índices de
		// uma permutação aleatória. A ordem da permutação é a ordem de
		// premiação (1º, 2º, ...).
		perm := rng.Perm(len(participants))
		selected := make([]model.Participant, 0, quantity)
		winners := make([]model.Winner, 0, quantity)
		for _, idx := range perm[:quantity] {
			p := participants[idx]
			selected = append(selected, p)
			winners = append(winners, model.Winner{
				DrawId:        draw.ID,
				ParticipantId: p.ID,
			})
		}

		if err := tx.Create(&winners).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrDrawExecuted
			}
			return err
		}

		results = make([]model.WinnerWithParticipant, 0, quantity)
		for i, w := range winners {
			results = append(results, model.WinnerWithParticipant{
				ID:            w.ID,
				DrawId:        w.DrawId,
				ParticipantId: w.ParticipantId,
				CreatedAt:     w.CreatedAt,
				Participant:   selected[i],
			})
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return results, nil
}

func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

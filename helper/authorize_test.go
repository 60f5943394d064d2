package helper

import (
	"errors"
	"testing"

	"sortear_api/model"
)

func TestOwnershipChain(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "dona@radio.com")
	intruder := seedUser(t, db, "outra@radio.com")

	promotion := seedPromotion(t, db, owner.ID, "Promo da Dona")
	participant := seedParticipant(t, db, promotion.ID, "Joana", "11933330001")
	draw := seedDraw(t, db, promotion.ID)
	winner := &model.Winner{DrawId: draw.ID, ParticipantId: participant.ID}
	if err := db.Create(winner).Error; err != nil {
		t.Fatalf("seed winner: %v", err)
	}

	t.Run("dona enxerga toda a cadeia", func(t *testing.T) {
		if _, err := OwnedPromotion(db, owner.ID, promotion.ID); err != nil {
			t.Errorf("promoção: %v", err)
		}
		if _, err := OwnedParticipant(db, owner.ID, participant.ID); err != nil {
			t.Errorf("participante: %v", err)
		}
		if _, err := OwnedDraw(db, owner.ID, draw.ID); err != nil {
			t.Errorf("sorteio: %v", err)
		}
		if _, err := ResolveOwningPromotion(db, owner.ID, KindWinner, winner.ID); err != nil {
			t.Errorf("ganhador: %v", err)
		}
	})

	t.Run("outro usuário não enxerga nada", func(t *testing.T) {
		if _, err := OwnedPromotion(db, intruder.ID, promotion.ID); !errors.Is(err, ErrNotOwned) {
			t.Errorf("promoção: esperava ErrNotOwned, veio %v", err)
		}
		if _, err := OwnedParticipant(db, intruder.ID, participant.ID); !errors.Is(err, ErrNotOwned) {
			t.Errorf("participante: esperava ErrNotOwned, veio %v", err)
		}
		if _, err := OwnedDraw(db, intruder.ID, draw.ID); !errors.Is(err, ErrNotOwned) {
			t.Errorf("sorteio: esperava ErrNotOwned, veio %v", err)
		}
		if _, err := ResolveOwningPromotion(db, intruder.ID, KindWinner, winner.ID); !errors.Is(err, ErrNotOwned) {
			t.Errorf("ganhador: esperava ErrNotOwned, veio %v", err)
		}
	})

	t.Run("id inexistente responde igual a id alheio", func(t *testing.T) {
		if _, err := OwnedPromotion(db, owner.ID, 99999); !errors.Is(err, ErrNotOwned) {
			t.Errorf("promoção: esperava ErrNotOwned, veio %v", err)
		}
		if _, err := OwnedDraw(db, owner.ID, 99999); !errors.Is(err, ErrNotOwned) {
			t.Errorf("sorteio: esperava ErrNotOwned, veio %v", err)
		}
	})

	t.Run("resolve a promoção dona da entidade", func(t *testing.T) {
		resolved, err := ResolveOwningPromotion(db, owner.ID, KindParticipant, participant.ID)
		if err != nil {
			t.Fatalf("resolver: %v", err)
		}
		if resolved.ID != promotion.ID {
			t.Errorf("promoção resolvida %d, esperava %d", resolved.ID, promotion.ID)
		}
	})
}

func TestParticipantPhoneUniqueness(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "op@radio.com")
	promoA := seedPromotion(t, db, user.ID, "Promo A")
	promoB := seedPromotion(t, db, user.ID, "Promo B")

	seedParticipant(t, db, promoA.ID, "Joana", "11922220001")

	t.Run("mesmo telefone na mesma promoção é rejeitado", func(t *testing.T) {
		dup := &model.Participant{PromotionId: promoA.ID, Name: "Outra Joana", Phone: "11922220001"}
		if err := db.Create(dup).Error; err == nil {
			t.Error("esperava violação do índice único")
		}
	})

	t.Run("mesmo telefone em promoção diferente é aceito", func(t *testing.T) {
		ok := &model.Participant{PromotionId: promoB.ID, Name: "Joana", Phone: "11922220001"}
		if err := db.Create(ok).Error; err != nil {
			t.Errorf("criar em outra promoção: %v", err)
		}
	})
}

func TestGenerateUniquePromotionSlug(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "op@radio.com")

	first := seedPromotion(t, db, user.ID, "Promoção de Verão")
	if first.Slug != "promocao-de-verao" {
		t.Errorf("slug %q, esperava promocao-de-verao", first.Slug)
	}

	second := seedPromotion(t, db, user.ID, "Promoção de Verão")
	if second.Slug == first.Slug {
		t.Errorf("slug repetido: %q", second.Slug)
	}
}

package helper

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"sortear_api/database"
	"sortear_api/model"
	"sortear_api/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:helpertest%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.Migrate(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Operador",
		Email:        email,
		PasswordHash: "x",
		Radio:        "Radio Teste FM",
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPromotion(t *testing.T, db *gorm.DB, userId uint, name string) *model.Promotion {
	t.Helper()
	promotion := &model.Promotion{
		Name:      name,
		Slug:      GenerateUniquePromotionSlug(db, name),
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
		Status:    "active",
		UserId:    userId,
	}
	if err := db.Create(promotion).Error; err != nil {
		t.Fatalf("seed promotion: %v", err)
	}
	return promotion
}

func seedParticipant(t *testing.T, db *gorm.DB, promotionId uint, name, phone string) *model.Participant {
	t.Helper()
	participant := &model.Participant{
		PromotionId: promotionId,
		Name:        name,
		Phone:       phone,
	}
	if err := db.Create(participant).Error; err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	return participant
}

func seedDraw(t *testing.T, db *gorm.DB, promotionId uint) *model.Draw {
	t.Helper()
	draw := &model.Draw{
		PromotionId: promotionId,
		ScheduledAt: time.Now(),
		Description: utils.StringPtr("Sorteio de teste"),
	}
	if err := db.Create(draw).Error; err != nil {
		t.Fatalf("seed draw: %v", err)
	}
	return draw
}

func TestExecuteDraw(t *testing.T) {
	t.Run("sorteia sem repetir participante", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "op@radio.com")
		promotion := seedPromotion(t, db, user.ID, "Promo Verao")
		for i := 0; i < 5; i++ {
			seedParticipant(t, db, promotion.ID, fmt.Sprintf("P%d", i), fmt.Sprintf("1199999000%d", i))
		}
		draw := seedDraw(t, db, promotion.ID)

		rng := rand.New(rand.NewSource(42))
		winners, err := ExecuteDraw(db, rng, user.ID, draw.ID, 3)
		if err != nil {
			t.Fatalf("executar sorteio: %v", err)
		}
		if len(winners) != 3 {
			t.Fatalf("esperava 3 ganhadores, veio %d", len(winners))
		}

		seen := make(map[uint]bool)
		for _, w := range winners {
			if seen[w.ParticipantId] {
				t.Errorf("participante %d sorteado duas vezes", w.ParticipantId)
			}
			seen[w.ParticipantId] = true
			if w.Participant.ID != w.ParticipantId {
				t.Errorf("participante embutido divergente: %d != %d", w.Participant.ID, w.ParticipantId)
			}
		}

		var count int64
		db.Model(&model.Winner{}).Where("draw_id = ?", draw.ID).Count(&count)
		if count != 3 {
			t.Errorf("esperava 3 ganhadores gravados, veio %d", count)
		}
	})

	t.Run("quantidade acima do total é limitada ao total", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "op@radio.com")
		promotion := seedPromotion(t, db, user.ID, "Promo Inverno")
		for i := 0; i < 3; i++ {
			seedParticipant(t, db, promotion.ID, fmt.Sprintf("P%d", i), fmt.Sprintf("1198888000%d", i))
		}
		draw := seedDraw(t, db, promotion.ID)

		rng := rand.New(rand.NewSource(7))
		winners, err := ExecuteDraw(db, rng, user.ID, draw.ID, 10)
		if err != nil {
			t.Fatalf("executar sorteio: %v", err)
		}
		if len(winners) != 3 {
			t.Fatalf("esperava 3 ganhadores (todo o pool), veio %d", len(winners))
		}
	})

	t.Run("quantidade não positiva vale um", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "op@radio.com")
		promotion := seedPromotion(t, db, user.ID, "Promo Um")
		seedParticipant(t, db, promotion.ID, "Joana", "11977770001")
		seedParticipant(t, db, promotion.ID, "Marcos", "11977770002")
		draw := seedDraw(t, db, promotion.ID)

		rng := rand.New(rand.NewSource(3))
		winners, err := ExecuteDraw(db, rng, user.ID, draw.ID, 0)
		if err != nil {
			t.Fatalf("executar sorteio: %v", err)
		}
		if len(winners) != 1 {
			t.Fatalf("esperava 1 ganhador, veio %d", len(winners))
		}
	})

	t.Run("promoção sem participantes", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "op@radio.com")
		promotion := seedPromotion(t, db, user.ID, "Promo Vazia")
		draw := seedDraw(t, db, promotion.ID)

		rng := rand.New(rand.NewSource(1))
		_, err := ExecuteDraw(db, rng, user.ID, draw.ID, 1)
		if !errors.Is(err, ErrDrawNoParticipants) {
			t.Fatalf("esperava ErrDrawNoParticipants, veio %v", err)
		}

		var count int64
		db.Model(&model.Winner{}).Where("draw_id = ?", draw.ID).Count(&count)
		if count != 0 {
			t.Errorf("sorteio sem participantes não pode gravar ganhadores, veio %d", count)
		}
	})

	t.Run("segunda execução falha e não grava nada", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "op@radio.com")
		promotion := seedPromotion(t, db, user.ID, "Promo Unica")
		seedParticipant(t, db, promotion.ID, "Joana", "11966660001")
		seedParticipant(t, db, promotion.ID, "Marcos", "11966660002")
		draw := seedDraw(t, db, promotion.ID)

		rng := rand.New(rand.NewSource(9))
		if _, err := ExecuteDraw(db, rng, user.ID, draw.ID, 1); err != nil {
			t.Fatalf("primeira execução: %v", err)
		}

		_, err := ExecuteDraw(db, rng, user.ID, draw.ID, 1)
		if !errors.Is(err, ErrDrawExecuted) {
			t.Fatalf("esperava ErrDrawExecuted, veio %v", err)
		}

		var count int64
		db.Model(&model.Winner{}).Where("draw_id = ?", draw.ID).Count(&count)
		if count != 1 {
			t.Errorf("conjunto de ganhadores deve ficar intacto, veio %d", count)
		}
	})

	t.Run("sorteio de outro usuário é invisível", func(t *testing.T) {
		db := newTestDB(t)
		owner := seedUser(t, db, "dona@radio.com")
		intruder := seedUser(t, db, "outra@radio.com")
		promotion := seedPromotion(t, db, owner.ID, "Promo Alheia")
		seedParticipant(t, db, promotion.ID, "Joana", "11955550001")
		draw := seedDraw(t, db, promotion.ID)

		rng := rand.New(rand.NewSource(5))
		_, err := ExecuteDraw(db, rng, intruder.ID, draw.ID, 1)
		if !errors.Is(err, ErrNotOwned) {
			t.Fatalf("esperava ErrNotOwned, veio %v", err)
		}
	})

	t.Run("distribuição aproximadamente uniforme", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "op@radio.com")
		promotion := seedPromotion(t, db, user.ID, "Promo Freq")
		participants := make([]*model.Participant, 3)
		for i := range participants {
			participants[i] = seedParticipant(t, db, promotion.ID, fmt.Sprintf("P%d", i), fmt.Sprintf("1194444000%d", i))
		}

		rng := rand.New(rand.NewSource(2024))
		const trials = 300
		wins := make(map[uint]int)
		for i := 0; i < trials; i++ {
			draw := seedDraw(t, db, promotion.ID)
			winners, err := ExecuteDraw(db, rng, user.ID, draw.ID, 1)
			if err != nil {
				t.Fatalf("execução %d: %v", i, err)
			}
			wins[winners[0].ParticipantId]++
		}

		// Esperado ~100 por participante; a folga acomoda a variância.
		for _, p := range participants {
			if wins[p.ID] < 60 || wins[p.ID] > 140 {
				t.Errorf("participante %d ganhou %d de %d, fora da faixa uniforme", p.ID, wins[p.ID], trials)
			}
		}
	})
}

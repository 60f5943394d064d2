package helper

import (
	"testing"
	"time"

	"sortear_api/constants"
	"sortear_api/database"
	"sortear_api/model"
)

func TestAutoClosePromotions(t *testing.T) {
	db := newTestDB(t)
	prev := database.DB
	database.DB = db
	defer func() { database.DB = prev }()

	user := seedUser(t, db, "op@radio.com")

	expired := seedPromotion(t, db, user.ID, "Promo Vencida")
	expired.StartDate = time.Now().AddDate(0, -2, 0)
	expired.EndDate = time.Now().AddDate(0, 0, -3)
	db.Save(expired)

	current := seedPromotion(t, db, user.ID, "Promo Vigente")

	inactive := seedPromotion(t, db, user.ID, "Promo Rascunho")
	inactive.Status = constants.PROMOTION_STATUS_INACTIVE
	inactive.EndDate = time.Now().AddDate(0, 0, -3)
	db.Save(inactive)

	AutoClosePromotions()

	var reloaded model.Promotion
	db.First(&reloaded, expired.ID)
	if reloaded.Status != constants.PROMOTION_STATUS_CLOSED {
		t.Errorf("promoção vencida deveria fechar, status %q", reloaded.Status)
	}

	reloaded = model.Promotion{}
	db.First(&reloaded, current.ID)
	if reloaded.Status != constants.PROMOTION_STATUS_ACTIVE {
		t.Errorf("promoção vigente não pode fechar, status %q", reloaded.Status)
	}

	// Rascunho vencido fica como está, ativação é sempre manual
	reloaded = model.Promotion{}
	db.First(&reloaded, inactive.ID)
	if reloaded.Status != constants.PROMOTION_STATUS_INACTIVE {
		t.Errorf("rascunho não muda de status, veio %q", reloaded.Status)
	}
}

func TestCleanupExpiredResetTokens(t *testing.T) {
	db := newTestDB(t)
	prev := database.DB
	database.DB = db
	defer func() { database.DB = prev }()

	user := seedUser(t, db, "op@radio.com")
	stale := model.PasswordResetToken{UserId: user.ID, Token: "velho", ExpiresAt: time.Now().Add(-time.Hour)}
	fresh := model.PasswordResetToken{UserId: user.ID, Token: "novo", ExpiresAt: time.Now().Add(time.Hour)}
	db.Create(&stale)
	db.Create(&fresh)

	CleanupExpiredResetTokens()

	var count int64
	db.Model(&model.PasswordResetToken{}).Count(&count)
	if count != 1 {
		t.Fatalf("esperava só o token válido, veio %d", count)
	}
	var remaining model.PasswordResetToken
	db.First(&remaining)
	if remaining.Token != "novo" {
		t.Errorf("token errado sobreviveu: %q", remaining.Token)
	}
}

package helper

import (
	"log"
	"time"

	"sortear_api/constants"
	"sortear_api/database"
	"sortear_api/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var promotionScheduler gocron.Scheduler
var cleanupCron *cron.Cron

// AutoClosePromotions fecha promoções ativas cuja data final já passou.
// A ativação continua manual: quem decide quando a promoção entra no ar
// é o operador da rádio.
func AutoClosePromotions() {
	log.Println("[CRON] AutoClosePromotions triggered")

	db := database.DB
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var promotions []model.Promotion
	if err := db.Where("status = ?", constants.PROMOTION_STATUS_ACTIVE).Find(&promotions).Error; err != nil {
		log.Printf("erro ao varrer promoções: %v", err)
		return
	}

	for _, promotion := range promotions {
		endDate := promotion.EndDate.UTC().Truncate(24 * time.Hour)
		if today.After(endDate) {
			promotion.Status = constants.PROMOTION_STATUS_CLOSED
			if err := db.Save(&promotion).Error; err != nil {
				log.Printf("erro ao fechar promoção '%s': %v", promotion.Name, err)
			} else {
				log.Printf("promoção '%s' fechada (fim em %s)", promotion.Name, endDate.Format("2006-01-02"))
			}
		}
	}
}

func StartPromotionStatusScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Printf("erro ao criar scheduler de promoções: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoClosePromotions),
	)
	if err != nil {
		log.Printf("erro ao registrar job de promoções: %v", err)
		return
	}

	promotionScheduler = s
	s.Start()
	AutoClosePromotions()
}

func StopPromotionStatusScheduler() {
	if promotionScheduler != nil {
		_ = promotionScheduler.Shutdown()
	}
}

// CleanupExpiredResetTokens remove tokens de redefinição de senha vencidos.
func CleanupExpiredResetTokens() {
	db := database.DB
	result := db.Where("expires_at < ?", time.Now()).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		log.Printf("erro ao limpar tokens de redefinição: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CRON] %d tokens de redefinição expirados removidos", result.RowsAffected)
	}
}

func StartResetTokenCleanup() {
	cleanupCron = cron.New()
	_, err := cleanupCron.AddFunc("@hourly", CleanupExpiredResetTokens)
	if err != nil {
		log.Printf("erro ao registrar limpeza de tokens: %v", err)
		return
	}
	cleanupCron.Start()
}

func StopResetTokenCleanup() {
	if cleanupCron != nil {
		cleanupCron.Stop()
	}
}

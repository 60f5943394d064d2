package helper

import (
	"fmt"

	"sortear_api/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniquePromotionSlug monta o slug público da promoção
// (usado no link/QR de inscrição) garantindo unicidade.
func GenerateUniquePromotionSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Promotion{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}

package handler

import (
	"errors"
	"fmt"
	"os"

	"sortear_api/constants"
	"sortear_api/database"
	"sortear_api/helper"
	"sortear_api/model"
	"sortear_api/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreatePromotion(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	input, ok := c.Locals("createInput").(model.Promotion)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	input.UserId = user.ID
	input.Slug = helper.GenerateUniquePromotionSlug(db, input.Name)

	if err := db.Create(&input).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, input)
}

// GetPromotions lista as promoções do usuário com contagem de
// participantes e sorteios por linha (subqueries correlacionadas:
// joins duplos multiplicariam as contagens).
func GetPromotions(c *fiber.Ctx) error {
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	filter := new(model.PromotionFilter)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if filter.Status != nil && !utils.IsValidValueOfConstant(*filter.Status, constants.PROMOTION_STATUSES) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("status invalid"))
	}

	countQuery := database.DB.Model(&model.Promotion{}).Where("user_id = ?", user.ID)
	if filter.Status != nil {
		countQuery = countQuery.Where("status = ?", *filter.Status)
	}
	var total int64
	countQuery.Count(&total)

	query := database.DB.Model(&model.Promotion{}).
		Select("promotions.*, " +
			"(SELECT COUNT(*) FROM participants WHERE participants.promotion_id = promotions.id) AS participants_count, " +
			"(SELECT COUNT(*) FROM draws WHERE draws.promotion_id = promotions.id) AS draws_count").
		Where("promotions.user_id = ?", user.ID).
		Order("promotions.created_at DESC")
	if filter.Status != nil {
		query = query.Where("promotions.status = ?", *filter.Status)
	}
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)

	var promotions []model.PromotionWithCount
	if err := query.Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       promotions,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetPromotionById(c *fiber.Ctx) error {
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	promotion, err := helper.OwnedPromotion(database.DB, user.ID, uint(promotionId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

func UpdatePromotion(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("promotionId").(int)
	promotion, err := helper.OwnedPromotion(db, user.ID, uint(promotionId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	input, ok := c.Locals("updateInput").(model.UpdatePromotionPatch)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if input.Name != nil && *input.Name != promotion.Name {
		promotion.Name = *input.Name
		promotion.Slug = helper.GenerateUniquePromotionSlug(db, *input.Name)
	}
	if input.Description != nil {
		promotion.Description = input.Description
	}
	if input.StartDate != nil {
		promotion.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		promotion.EndDate = *input.EndDate
	}
	if input.Status != nil {
		promotion.Status = *input.Status
	}
	if promotion.EndDate.Before(promotion.StartDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "endDate anterior a startDate", errors.New("invalid period"))
	}

	if err := db.Save(promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

// DeletePromotion remove a promoção; participantes, sorteios e
// ganhadores caem em cascata.
func DeletePromotion(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	promotion, err := helper.OwnedPromotion(db, user.ID, uint(promotionId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		drawIds := tx.Model(&model.Draw{}).Select("id").Where("promotion_id = ?", promotion.ID)
		if err := tx.Where("draw_id IN (?)", drawIds).Delete(&model.Winner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("promotion_id = ?", promotion.ID).Delete(&model.Draw{}).Error; err != nil {
			return err
		}
		if err := tx.Where("promotion_id = ?", promotion.ID).Delete(&model.Participant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Promotion{}, promotion.ID).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Promoção removida",
	})
}

// GetPromotionQRCode devolve o PNG com o link público de inscrição,
// para imprimir em material de divulgação da rádio.
func GetPromotionQRCode(c *fiber.Ctx) error {
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	promotion, err := helper.OwnedPromotion(database.DB, user.ID, uint(promotionId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	link := fmt.Sprintf("%s/p/%s", os.Getenv("PUBLIC_BASE_URL"), promotion.Slug)
	png, err := utils.GenerateQRCode(link, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

func UploadPromotionBanner(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	promotion, err := helper.OwnedPromotion(db, user.ID, uint(promotionId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	fileHeader, err := c.FormFile("banner")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Arquivo 'banner' ausente", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	defer file.Close()

	cld := helper.InitCloudinary()
	uploadResult, err := cld.Upload.Upload(c.Context(), file, uploader.UploadParams{
		Folder:   "sortear/banners",
		PublicID: fmt.Sprintf("promotion-%d", promotion.ID),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Falha no upload do banner", err)
	}

	promotion.BannerUrl = &uploadResult.SecureURL
	if err := db.Save(promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

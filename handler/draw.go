package handler

import (
	"errors"

	"sortear_api/constants"
	"sortear_api/database"
	"sortear_api/helper"
	"sortear_api/model"
	"sortear_api/utils"

	"github.com/gofiber/fiber/v2"
)

// drawSource é a fonte de aleatoriedade dos sorteios; os testes trocam
// por uma fonte com seed fixa.
var drawSource = helper.NewDrawSource()

func CreateDraw(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	input, ok := c.Locals("createInput").(model.Draw)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	promotion, err := helper.OwnedPromotion(db, user.ID, input.PromotionId)
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	if promotion.Status != constants.PROMOTION_STATUS_ACTIVE {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PROMOTION_NOT_ACTIVE, errors.New("promotion not active"))
	}

	if err := db.Create(&input).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, input)
}

func GetDrawsByPromotion(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	if _, err := helper.OwnedPromotion(db, user.ID, uint(promotionId)); err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	var draws []model.Draw
	if err := db.Where("promotion_id = ?", promotionId).
		Order("scheduled_at DESC").
		Find(&draws).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, draws)
}

func GetDrawById(c *fiber.Ctx) error {
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	drawId, _ := c.Locals("inputId").(int)
	draw, err := helper.OwnedDraw(database.DB, user.ID, uint(drawId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.DRAW_NOT_FOUND)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, draw)
}

// UpdateDraw só é permitido enquanto o sorteio não tiver ganhadores.
func UpdateDraw(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	drawId, _ := c.Locals("drawId").(int)
	draw, err := helper.OwnedDraw(db, user.ID, uint(drawId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.DRAW_NOT_FOUND)
	}

	var winnerCount int64
	db.Model(&model.Winner{}).Where("draw_id = ?", draw.ID).Count(&winnerCount)
	if winnerCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DRAW_HAS_WINNERS, errors.New("draw has winners"))
	}

	input, ok := c.Locals("updateInput").(model.UpdateDrawPatch)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if input.ScheduledAt != nil {
		draw.ScheduledAt = *input.ScheduledAt
	}
	if input.Description != nil {
		draw.Description = input.Description
	}

	if err := db.Save(draw).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, draw)
}

func DeleteDraw(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	drawId, _ := c.Locals("inputId").(int)
	draw, err := helper.OwnedDraw(db, user.ID, uint(drawId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.DRAW_NOT_FOUND)
	}

	var winnerCount int64
	db.Model(&model.Winner{}).Where("draw_id = ?", draw.ID).Count(&winnerCount)
	if winnerCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DRAW_HAS_WINNERS, errors.New("draw has winners"))
	}

	if err := db.Delete(&model.Draw{}, draw.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Sorteio removido",
	})
}

// ExecuteDraw sorteia os ganhadores. A execução em si (trava, checagem
// de reexecução, amostragem e gravação) é atômica em helper.ExecuteDraw;
// aqui ficam a tradução de erros e os efeitos pós-commit (feed ao vivo
// e email dos ganhadores).
func ExecuteDraw(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	drawId, _ := c.Locals("drawId").(int)
	input, ok := c.Locals("executeInput").(model.ExecuteDrawInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	winners, err := helper.ExecuteDraw(db, drawSource, user.ID, uint(drawId), input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrNotOwned):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.DRAW_NOT_FOUND, nil)
		case errors.Is(err, helper.ErrDrawExecuted):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DRAW_ALREADY_EXECUTED, err)
		case errors.Is(err, helper.ErrDrawNoParticipants):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DRAW_NO_PARTICIPANTS, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	draw, err := helper.OwnedDraw(db, user.ID, uint(drawId))
	if err == nil {
		PublishDrawResults(draw.PromotionId, winners)
		notifyWinners(user, draw, winners)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, winners)
}

func notifyWinners(user *model.User, draw *model.Draw, winners []model.WinnerWithParticipant) {
	promotionName := ""
	var promotion model.Promotion
	if err := database.DB.First(&promotion, draw.PromotionId).Error; err == nil {
		promotionName = promotion.Name
	}
	for _, w := range winners {
		if w.Participant.Email == nil || *w.Participant.Email == "" {
			continue
		}
		utils.SendWinnerNotificationEmail(*w.Participant.Email, utils.WinnerNotificationData{
			ParticipantName: w.Participant.Name,
			PromotionName:   promotionName,
			RadioName:       user.Radio,
			DrawDate:        draw.ScheduledAt.Format("02/01/2006"),
		})
	}
}

// GetWinners lista os ganhadores de um sorteio com os dados do participante.
func GetWinners(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	drawId, _ := c.Locals("inputId").(int)
	draw, err := helper.OwnedDraw(db, user.ID, uint(drawId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.DRAW_NOT_FOUND)
	}

	var winners []model.Winner
	if err := db.Preload("Participant").
		Where("draw_id = ?", draw.ID).
		Order("id ASC").
		Find(&winners).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, winners)
}

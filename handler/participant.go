package handler

import (
	"errors"
	"strings"

	"sortear_api/constants"
	"sortear_api/database"
	"sortear_api/helper"
	"sortear_api/model"
	"sortear_api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func CreateParticipant(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	input, ok := c.Locals("createInput").(model.CreateParticipantInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if _, err := helper.OwnedPromotion(db, user.ID, input.PromotionId); err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	// Telefone único por promoção (pode repetir em promoções diferentes)
	var count int64
	db.Model(&model.Participant{}).
		Where("promotion_id = ? AND phone = ?", input.PromotionId, input.Phone).
		Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PARTICIPANT_PHONE_EXISTS, errors.New("phone exists in promotion"))
	}

	var participant model.Participant
	copier.Copy(&participant, &input)

	if err := db.Create(&participant).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, participant)
}

// GetParticipantsByPromotion lista com paginação e busca livre
// (substring case-insensitive em nome, telefone ou email).
func GetParticipantsByPromotion(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	if _, err := helper.OwnedPromotion(db, user.ID, uint(promotionId)); err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	filter := new(model.ParticipantFilter)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := db.Model(&model.Participant{}).Where("promotion_id = ?", promotionId)
	if filter.SearchKey != "" {
		pattern := "%" + strings.ToLower(filter.SearchKey) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	var participants []model.Participant
	if err := query.Order("created_at ASC").Find(&participants).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       participants,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CountParticipants(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	promotionId, _ := c.Locals("inputId").(int)
	if _, err := helper.OwnedPromotion(db, user.ID, uint(promotionId)); err != nil {
		return notOwnedOrInternal(c, err, constants.PROMOTION_NOT_FOUND)
	}

	var count int64
	db.Model(&model.Participant{}).Where("promotion_id = ?", promotionId).Count(&count)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"count": count})
}

func GetParticipantById(c *fiber.Ctx) error {
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	participantId, _ := c.Locals("inputId").(int)
	participant, err := helper.OwnedParticipant(database.DB, user.ID, uint(participantId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PARTICIPANT_NOT_FOUND)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, participant)
}

func UpdateParticipant(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	participantId, _ := c.Locals("participantId").(int)
	participant, err := helper.OwnedParticipant(db, user.ID, uint(participantId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PARTICIPANT_NOT_FOUND)
	}

	input, ok := c.Locals("updateInput").(model.UpdateParticipantInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	// Troca de telefone: reconfere unicidade contra os OUTROS
	// participantes da mesma promoção.
	if input.Phone != nil && *input.Phone != participant.Phone {
		var count int64
		db.Model(&model.Participant{}).
			Where("promotion_id = ? AND phone = ? AND id <> ?", participant.PromotionId, *input.Phone, participant.ID).
			Count(&count)
		if count > 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PARTICIPANT_PHONE_EXISTS, errors.New("phone exists in promotion"))
		}
		participant.Phone = *input.Phone
	}
	if input.Name != nil {
		participant.Name = *input.Name
	}
	if input.Cpf != nil {
		participant.Cpf = input.Cpf
	}
	if input.Email != nil {
		participant.Email = input.Email
	}

	if err := db.Save(participant).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, participant)
}

func DeleteParticipant(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	participantId, _ := c.Locals("inputId").(int)
	participant, err := helper.OwnedParticipant(db, user.ID, uint(participantId))
	if err != nil {
		return notOwnedOrInternal(c, err, constants.PARTICIPANT_NOT_FOUND)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", participant.ID).Delete(&model.Winner{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Participant{}, participant.ID).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Participante removido",
	})
}

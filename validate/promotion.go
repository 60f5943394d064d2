package validate

import (
	"errors"
	"strconv"
	"time"

	"sortear_api/constants"
	"sortear_api/model"
	"sortear_api/utils"

	"github.com/gofiber/fiber/v2"
)

func CreatePromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePromotionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		startDate, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return utils.ErrorResponse(c, 400, "startDate em formato inválido", err)
		}
		endDate, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return utils.ErrorResponse(c, 400, "endDate em formato inválido", err)
		}
		if endDate.Before(startDate) {
			return utils.ErrorResponse(c, 400, "endDate anterior a startDate", errors.New("invalid period"))
		}

		status := constants.PROMOTION_STATUS_INACTIVE
		if input.Status != nil {
			status = *input.Status
		}

		c.Locals("createInput", model.Promotion{
			Name:        input.Name,
			Description: input.Description,
			StartDate:   startDate,
			EndDate:     endDate,
			Status:      status,
		})
		return c.Next()
	}
}

// UpdatePromotion valida o id da rota e o corpo, e monta o patch tipado
// (somente os campos enviados são alterados).
func UpdatePromotion(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdatePromotionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		patch := model.UpdatePromotionPatch{
			Name:        input.Name,
			Description: input.Description,
			Status:      input.Status,
		}
		if input.StartDate != nil {
			startDate, err := time.Parse("2006-01-02", *input.StartDate)
			if err != nil {
				return utils.ErrorResponse(c, 400, "startDate em formato inválido", err)
			}
			patch.StartDate = &startDate
		}
		if input.EndDate != nil {
			endDate, err := time.Parse("2006-01-02", *input.EndDate)
			if err != nil {
				return utils.ErrorResponse(c, 400, "endDate em formato inválido", err)
			}
			patch.EndDate = &endDate
		}

		c.Locals("promotionId", valueKey)
		c.Locals("updateInput", patch)
		return c.Next()
	}
}

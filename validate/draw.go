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

func CreateDraw() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateDrawInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		scheduledAt, err := time.Parse(time.RFC3339, input.ScheduledAt)
		if err != nil {
			return utils.ErrorResponse(c, 400, "scheduledAt em formato inválido (use RFC3339)", err)
		}

		c.Locals("createInput", model.Draw{
			PromotionId: input.PromotionId,
			ScheduledAt: scheduledAt,
			Description: input.Description,
		})
		return c.Next()
	}
}

func UpdateDraw(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateDrawInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		patch := model.UpdateDrawPatch{
			Description: input.Description,
		}
		if input.ScheduledAt != nil {
			scheduledAt, err := time.Parse(time.RFC3339, *input.ScheduledAt)
			if err != nil {
				return utils.ErrorResponse(c, 400, "scheduledAt em formato inválido (use RFC3339)", err)
			}
			patch.ScheduledAt = &scheduledAt
		}

		c.Locals("drawId", valueKey)
		c.Locals("updateInput", patch)
		return c.Next()
	}
}

// ExecuteDraw aceita corpo vazio: quantity ausente ou não positivo vale 1.
func ExecuteDraw(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		input := model.ExecuteDrawInput{Quantity: 1}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
			}
		}

		c.Locals("drawId", valueKey)
		c.Locals("executeInput", input)
		return c.Next()
	}
}

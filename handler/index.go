package handler

import (
	"errors"

	"sortear_api/constants"
	"sortear_api/helper"
	"sortear_api/model"
	"sortear_api/utils"

	"github.com/gofiber/fiber/v2"
)

// requireActiveUser resolve o usuário ativo do token. Quando retorna
// user == nil a resposta de erro já foi escrita.
func requireActiveUser(c *fiber.Ctx) (*model.User, error) {
	user, err := helper.GetActiveUser(c)
	if err != nil {
		if errors.Is(err, helper.ErrUserInactive) {
			return nil, utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ACCOUNT_NOT_ACTIVE, err)
		}
		return nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, "Não autenticado", err)
	}
	return user, nil
}

// notOwnedOrInternal converte o resultado da checagem de posse em resposta:
// ErrNotOwned vira 404 com a mensagem da entidade, qualquer outra falha é 500.
func notOwnedOrInternal(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, helper.ErrNotOwned) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, notFoundMsg, nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

package handler

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"time"

	"sortear_api/constants"
	"sortear_api/database"
	"sortear_api/helper"
	"sortear_api/model"
	"sortear_api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/jordan-wright/email"
)

// CreateUser é o cadastro público de operador de rádio.
func CreateUser(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("createInput").(model.CreateUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	existing, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMAIL_ALREADY_EXISTS, errors.New("email exists"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	var newUser model.User
	copier.Copy(&newUser, &input)
	newUser.PasswordHash = hash
	newUser.Active = true

	if err := db.Create(&newUser).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newUser)
}

func Me(c *fiber.Ctx) error {
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// UpdateMe aplica patch parcial: só os campos enviados são alterados.
func UpdateMe(c *fiber.Ctx) error {
	db := database.DB
	user, errResp := requireActiveUser(c)
	if user == nil {
		return errResp
	}

	input, ok := c.Locals("updateInput").(model.UpdateUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := helper.GetUserByEmail(*input.Email)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if existing != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMAIL_ALREADY_EXISTS, errors.New("email exists"))
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Radio != nil {
		user.Radio = *input.Radio
	}
	if input.Password != nil {
		hash, err := helper.HashPassword(*input.Password)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
		}
		user.PasswordHash = hash
	}

	if err := db.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB
	emailInput, ok := c.Locals("EmailForgotPassword").(model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var user model.User
	if err := db.Where("email = ?", emailInput.Email).First(&user).Error; err != nil {
		// Resposta idêntica com ou sem cadastro: não confirma emails.
		return c.JSON(fiber.Map{"message": "Se o email estiver cadastrado, o link de recuperação será enviado"})
	}

	token := uuid.NewString()
	resetToken := model.PasswordResetToken{
		UserId:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("PUBLIC_BASE_URL"), token)
	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{emailInput.Email}
	e.Subject = "Recuperação de senha - SorteAr"
	e.Text = []byte(fmt.Sprintf("Clique no link para redefinir sua senha: %s", resetLink))

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost != "" {
		addr := smtpHost + ":" + os.Getenv("SMTP_PORT")
		auth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), smtpHost)
		if err := e.Send(addr, auth); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Não foi possível enviar o email", err)
		}
	}

	return c.JSON(fiber.Map{"message": "Se o email estiver cadastrado, o link de recuperação será enviado"})
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB
	resetInput, ok := c.Locals("ResetPassword").(model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ?", resetInput.Token, time.Now()).First(&resetToken).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token inválido ou expirado"})
	}

	var user model.User
	if err := db.First(&user, resetToken.UserId).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	}

	hash, err := helper.HashPassword(resetInput.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	user.PasswordHash = hash
	if err := db.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	db.Delete(&resetToken)

	return c.JSON(fiber.Map{"message": "Senha redefinida com sucesso"})
}

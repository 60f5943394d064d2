package database

import (
	"log"

	"sortear_api/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("sortear123"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "sortear123"
	}
	users := []model.User{
		{Name: "Operador Demo", Email: "demo@sortear.com.br", Radio: "Rádio Demo FM", PasswordHash: HashPassword, Active: true},
	}

	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Email, "error:", err)
		}
	}
}

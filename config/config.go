package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config lê uma variável do .env (fallback: ambiente do processo)
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Print("Error loading .env file")
	}
	return os.Getenv(key)
}

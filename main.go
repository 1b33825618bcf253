package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/blwclub/membership-portal/cmd/app"
)

// @title        Club membership portal API
// @description  Sports club membership applications, admin review and payment tracking.
//
// @contact.name   Club Office
// @contact.email  office@club.com
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token returned by /auth/login
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}

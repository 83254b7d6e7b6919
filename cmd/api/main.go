package main

import (
	_ "github.com/joho/godotenv/autoload"
)

// @title        Billing Documents API
// @version      1.0
// @description  Quotes, invoices and credit notes with server-computed totals.
// @BasePath     /
func main() {
	Execute()
}

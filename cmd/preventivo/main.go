package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local defaults; environment wins when both set.
	_ = godotenv.Load()

	Execute()
}

package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints the bcrypt hash of an access code for the ACCESS_CODE_HASH
// environment variable.
func main() {
	if len(os.Args) != 2 {
		log.Fatal("Usage: go run cmd/hash-access-code/main.go <access-code>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash access code: %v", err)
	}

	fmt.Println(string(hash))
}

package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_admin_key_hash.go <admin-key>")
	}

	key := os.Args[1]
	if len(key) < 12 {
		log.Fatal("Admin key must be at least 12 characters long")
	}

	cost := 12

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	fmt.Printf("Admin key: %s\n", key)
	fmt.Printf("ADMIN_KEY_HASH=%s\n", string(hash))

	err = bcrypt.CompareHashAndPassword(hash, []byte(key))
	if err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Println("✅ Hash verified successfully!")
}

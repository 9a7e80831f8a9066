package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Admin accounts cannot be self-registered; this prints the INSERT to seed
// one. Usage: go run scripts/seedadmin.go admin@espacestage.fr 'S3cret!pass'
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: seedadmin <email> <password>")
		os.Exit(1)
	}
	email, password := os.Args[1], os.Args[2]

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf("INSERT INTO accounts (email, password_hash, role, status)\nVALUES ('%s', '%s', 'admin', 'active');\n", email, string(hash))
}

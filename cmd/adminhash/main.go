// Command adminhash mints the credential record expected in
// ADMIN_PASSWORD_HASH. Run once during setup:
//
//	go run ./cmd/adminhash 'your-password-here'
package main

import (
	"fmt"
	"os"

	"github.com/iambatul/sishairven/internal/auth/credentials"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: adminhash <password>")
		os.Exit(2)
	}

	record := credentials.HashPassword(os.Args[1])

	if !credentials.VerifyPassword(os.Args[1], record) {
		fmt.Fprintln(os.Stderr, "adminhash: self-check failed")
		os.Exit(1)
	}

	fmt.Println(record)
}

// File: cmd/devtoken/main.go
//
// devtoken signs a bearer token for local testing of the chat API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"

	"github.com/iyunix/go-workshopchat/internal/auth"
	"github.com/iyunix/go-workshopchat/internal/config"
	"github.com/iyunix/go-workshopchat/internal/domain"
)

func main() {
	userID := flag.String("user", "", "User ID placed in the sub claim")
	roleName := flag.String("role", "parent", "Conversation side: provider or parent")
	ttl := flag.Duration("ttl", auth.DefaultTTL, "Token lifetime")
	quiet := flag.Bool("q", false, "Print only the token")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	role, err := domain.ParseRole(*roleName)
	if err != nil {
		log.Fatalf("invalid -role %q: must be provider or parent", *roleName)
	}
	if *userID == "" {
		log.Fatal("-user is required")
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = config.DevelopmentSecret
	}

	token, err := auth.GenerateJWT(*userID, role, []byte(secret), *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	if *quiet {
		fmt.Println(token)
		return
	}

	color.New(color.FgGreen, color.OpBold).Printf("token for %s (%s), valid until %s\n",
		*userID, role, time.Now().Add(*ttl).UTC().Format(time.RFC3339))
	fmt.Println(token)
	color.FgDarkGray.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/chat/rooms\n", token)
}

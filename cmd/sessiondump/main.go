package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"extensions-web/internal/model"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// sessiondump prints the wizard state stored for a session key, for debugging
// stuck journeys in live environments.
//
// Usage: sessiondump <session-key>
func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: sessiondump <session-key>")
		os.Exit(1)
	}
	key := os.Args[1]

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		color.Red("❌ Bad REDIS_URL: %v", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(opt)

	ctx := context.Background()
	raw, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		color.Yellow("No session found for key %s", key)
		return
	}
	if err != nil {
		color.Red("❌ Redis error: %v", err)
		os.Exit(1)
	}

	var data model.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		color.Red("❌ Stored session is not valid JSON: %v", err)
		os.Exit(1)
	}

	ttl, _ := rdb.TTL(ctx, key).Result()

	color.Cyan("=== Session %s (ttl %s) ===", key, ttl)
	fmt.Printf("Signed in:        %v (%s)\n", data.SignInInfo.SignedIn, data.SignInInfo.UserProfile.Email)
	fmt.Printf("Company:          %s\n", data.ExtensionSession.CompanyInContext)
	fmt.Printf("Submitted:        %v\n", data.Submitted)
	fmt.Printf("Changing details: %v\n", data.ChangingDetails)
	fmt.Printf("Back flag:        %v\n", data.NavigationBackFlag)

	color.Cyan("--- Extension requests ---")
	for _, req := range data.ExtensionSession.ExtensionRequests {
		reason := "<none>"
		if req.ReasonInContext != nil {
			reason = *req.ReasonInContext
		}
		fmt.Printf("  %s  request=%s  reason-in-context=%s\n", req.CompanyNumber, req.ExtensionRequestID, reason)
	}

	color.Cyan("--- Page history (oldest first) ---")
	for i, page := range data.PageHistory.PageHistory {
		fmt.Printf("  %2d. %s\n", i+1, page)
	}
}

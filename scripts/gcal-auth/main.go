// scripts/gcal-auth/main.go
//
// Authorizes the calendar assistant against a Google account with the OAuth
// desktop flow and writes the token next to the service binary.
//
// Usage:
//
//	go run scripts/gcal-auth/main.go -credentials google-credentials.json -token token.json
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func main() {
	credsPath := flag.String("credentials", "google-credentials.json", "OAuth desktop app credentials file")
	tokenPath := flag.String("token", "token.json", "where to write the OAuth token")
	flag.Parse()

	data, err := os.ReadFile(*credsPath)
	if err != nil {
		log.Fatalf("read credentials %q: %v", *credsPath, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		log.Fatalf("parse credentials: %v (is %q an OAuth desktop app credentials file?)", err, *credsPath)
	}

	fmt.Println("1. Open this URL and sign in with the Google account that owns the calendar:")
	fmt.Println()
	fmt.Println("  ", config.AuthCodeURL("calendar-assistant", oauth2.AccessTypeOffline, oauth2.ApprovalForce))
	fmt.Println()
	fmt.Print("2. Paste the authorization code here: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Fatalf("read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), strings.TrimSpace(code))
	if err != nil {
		log.Fatalf("exchange authorization code: %v", err)
	}

	if err := writeToken(*tokenPath, tok); err != nil {
		log.Fatalf("write token: %v", err)
	}

	fmt.Printf("\nToken saved to %s. Restart the service to use Google Calendar.\n", *tokenPath)
}

func writeToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

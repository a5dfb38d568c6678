package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

type webhookPayload struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	SessionRef string `json:"session_ref"`
}

// Simulates a payment gateway callback against a local server.
func main() {
	url := flag.String("url", "http://localhost:8080/webhooks/payments", "Webhook URL")
	secret := flag.String("secret", os.Getenv("PAY_API_KEY"), "Webhook secret (empty = unsigned, dev mode)")
	eventID := flag.String("event-id", "evt_"+randomHex(8), "Event ID")
	eventType := flag.String("type", "session.paid", "Event type (session.paid, session.failed)")
	sessionRef := flag.String("session", "", "Payment session id (required)")
	dryRun := flag.Bool("dry-run", false, "Only print the request, don't send")

	flag.Parse()

	if *sessionRef == "" {
		fmt.Fprintln(os.Stderr, "Error: -session is required")
		os.Exit(1)
	}

	body, err := json.Marshal(webhookPayload{
		EventID:    *eventID,
		Type:       *eventType,
		SessionRef: *sessionRef,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	sig := ""
	if *secret != "" {
		mac := hmac.New(sha256.New, []byte(*secret))
		mac.Write(body)
		sig = hex.EncodeToString(mac.Sum(nil))
		fmt.Printf("X-Webhook-Signature: %s\n", sig)
	}
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set("X-Webhook-Signature", sig)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

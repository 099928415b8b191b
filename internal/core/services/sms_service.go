package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
)

// SMSSender delivers a text message to a phone number. Delivery failure is
// reported to the caller, which decides whether it matters; OTP issuance
// never blocks on it.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// NewSMSService selects the configured SMS channel
func NewSMSService(cfg *config.Config) SMSSender {
	switch cfg.SMS.Service {
	case "twilio":
		return &twilioSender{
			sid:    cfg.SMS.TwilioSID,
			token:  cfg.SMS.TwilioToken,
			from:   cfg.SMS.TwilioFrom,
			client: &http.Client{Timeout: 10 * time.Second},
		}
	case "textlocal":
		return &textlocalSender{
			apiKey: cfg.SMS.TextlocalAPIKey,
			sender: cfg.SMS.TextlocalSender,
			client: &http.Client{Timeout: 10 * time.Second},
		}
	default:
		return &consoleSender{}
	}
}

// consoleSender logs the message instead of sending it
type consoleSender struct{}

func (s *consoleSender) Send(_ context.Context, phoneNumber, message string) error {
	log.Printf("📱 SMS to %s: %s", phoneNumber, message)
	return nil
}

// twilioSender sends via the Twilio Messages API
type twilioSender struct {
	sid    string
	token  string
	from   string
	client *http.Client
}

func (s *twilioSender) Send(ctx context.Context, phoneNumber, message string) error {
	// Indian numbers arrive without a country code
	if !strings.HasPrefix(phoneNumber, "+") {
		phoneNumber = "+91" + phoneNumber
	}

	data := url.Values{}
	data.Set("To", phoneNumber)
	data.Set("From", s.from)
	data.Set("Body", message)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.sid)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.sid, s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio send error: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// textlocalSender sends via the Textlocal bulk SMS API
type textlocalSender struct {
	apiKey string
	sender string
	client *http.Client
}

func (s *textlocalSender) Send(ctx context.Context, phoneNumber, message string) error {
	data := url.Values{}
	data.Set("apikey", s.apiKey)
	data.Set("numbers", phoneNumber)
	data.Set("message", message)
	data.Set("sender", s.sender)

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.textlocal.in/send/", strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("textlocal response parse error: %s", string(body))
	}
	if result.Status != "success" {
		return fmt.Errorf("textlocal send error: %s", string(body))
	}
	return nil
}

package notify

import (
	"fmt"
	"strings"

	"veg-meal-planner/internal/config"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// WhatsAppSender sends messages through the Twilio API from a fixed sandbox
// sender address.
type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

// NewWhatsAppSender creates a WhatsAppSender from the Twilio credentials in cfg.
func NewWhatsAppSender(cfg *config.Config) (*WhatsAppSender, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &WhatsAppSender{client: client, from: cfg.WhatsAppFrom}, nil
}

// Send delivers one WhatsApp message to a phone number.
func (s *WhatsAppSender) Send(to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(whatsAppAddress(to))
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send WhatsApp message to %s: %w", to, err)
	}
	return nil
}

// whatsAppAddress prefixes a bare phone number with the whatsapp: scheme.
func whatsAppAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

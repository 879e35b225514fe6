package config

import (
	"fmt"
	"os"
	"strings"
)

// Default sender for the Twilio WhatsApp sandbox.
const DefaultWhatsAppFrom = "whatsapp:+14155238886"

// Config holds the configuration for the application.
type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	GeminiModel  string

	// Twilio / WhatsApp config (required for the notifier, optional for the web UI)
	TwilioAccountSID string
	TwilioAuthToken  string
	WhatsAppFrom     string
	Recipients       []string

	ExportPath string
	Port       string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-flash"
	}

	whatsAppFrom := os.Getenv("WHATSAPP_FROM")
	if whatsAppFrom == "" {
		whatsAppFrom = DefaultWhatsAppFrom
	}

	exportPath := os.Getenv("EXPORT_PATH")
	if exportPath == "" {
		exportPath = "data/meal_plan.xlsx"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DatabaseURL:      databaseURL,
		GeminiAPIKey:     geminiAPIKey,
		GeminiModel:      geminiModel,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		WhatsAppFrom:     whatsAppFrom,
		Recipients:       splitRecipients(os.Getenv("RECIPIENTS")),
		ExportPath:       exportPath,
		Port:             port,
	}, nil
}

// splitRecipients parses the comma-delimited RECIPIENTS list, dropping blanks.
func splitRecipients(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

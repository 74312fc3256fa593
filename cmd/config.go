package cmd

import "fmt"

// Config carries everything the application reads from the environment.
type Config struct {
	HTTPPort   string
	AuthToken  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Paystack settlement. An empty secret key runs the gateway in mock mode.
	PaystackSecretKey string

	// When set, order transitions go through the order service over HTTP
	// instead of the in-process handler.
	OrderServiceURL string

	// When set, part lookups go to the catalog service over HTTP instead of
	// the shared parts table.
	CatalogURL string

	// Notification channels. Each channel falls back to mock delivery when
	// its credentials are absent.
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	TelegramBotToken string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

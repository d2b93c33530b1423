package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Identity holds the connection settings for the internal identity
// provider (a GoTrue-compatible HTTP API).
type Identity struct {
	BaseURL    string
	ServiceKey string
	// JWTSecret enables local verification of bearer tokens in the auth
	// middleware. When empty, tokens are resolved with a user-lookup call
	// against the provider instead.
	JWTSecret string
}

// Google holds credentials and object ids for the Drive/Docs/Sheets
// integration. At least one of the credential options must be present
// for the sync pipeline to run; which one wins is decided at sync time.
type Google struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
	// ServiceAccountJSON is either the literal key JSON or a path to it.
	ServiceAccountJSON string

	RootFolderID  string
	SpreadsheetID string
	SheetName     string

	TemplateAID        string
	TemplateBID        string
	TemplateCombinedID string
}

// Config is built once in main and passed into constructors. Business
// logic never reads the environment directly.
type Config struct {
	Port      string
	DBURL     string
	RedisAddr string

	// PINPepper is the server-held secret mixed into shadow-account
	// passwords. Never exposed to clients.
	PINPepper string

	Identity Identity
	Google   Google
}

// Load reads the configuration from the environment. A .env file is
// loaded first if one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment as-is")
	}

	return Config{
		Port:      getenv("PORT", "8080"),
		DBURL:     os.Getenv("DB_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		PINPepper: os.Getenv("PIN_PEPPER"),
		Identity: Identity{
			BaseURL:    os.Getenv("IDENTITY_URL"),
			ServiceKey: os.Getenv("IDENTITY_SERVICE_KEY"),
			JWTSecret:  os.Getenv("IDENTITY_JWT_SECRET"),
		},
		Google: Google{
			ClientID:           os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret:       os.Getenv("GOOGLE_CLIENT_SECRET"),
			RefreshToken:       os.Getenv("GOOGLE_REFRESH_TOKEN"),
			AccessToken:        os.Getenv("GOOGLE_ACCESS_TOKEN"),
			ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
			RootFolderID:       os.Getenv("GOOGLE_ROOT_FOLDER_ID"),
			SpreadsheetID:      os.Getenv("GOOGLE_SPREADSHEET_ID"),
			SheetName:          getenv("GOOGLE_SHEET_NAME", "Sheet1"),
			TemplateAID:        os.Getenv("GOOGLE_TEMPLATE_A_ID"),
			TemplateBID:        os.Getenv("GOOGLE_TEMPLATE_B_ID"),
			TemplateCombinedID: os.Getenv("GOOGLE_TEMPLATE_COMBINED_ID"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

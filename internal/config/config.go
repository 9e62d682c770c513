package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	EnableLocalAuth  bool
	EnableGoogleAuth bool

	AuthSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string // e.g., PUBLIC_URL + "/auth/google/callback"

	// Sign-in is restricted to this email domain. Accounts outside it are
	// rejected and signed back out immediately.
	AllowedEmailDomain string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	pub := os.Getenv("PUBLIC_URL")
	return Config{
		Mode:               mode,
		HTTPAddr:           addr,
		PublicURL:          pub,
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		EnableLocalAuth:    envBool("ENABLE_LOCAL_AUTH", true),
		EnableGoogleAuth:   envBool("ENABLE_GOOGLE_AUTH", mode == ModeOnline),
		AuthSecret:         envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  envOr("GOOGLE_REDIRECT_URI", strings.TrimSuffix(pub, "/")+"/auth/google/callback"),
		AllowedEmailDomain: os.Getenv("ALLOWED_EMAIL_DOMAIN"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://rubricboard.app"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

// Validate reports configuration gaps that must abort startup: enabling
// Google auth without its credentials or an allowed domain.
func (c Config) Validate() error {
	if c.EnableGoogleAuth {
		if c.GoogleClientID == "" || c.GoogleClientSecret == "" {
			return errMissingGoogleCreds
		}
		if c.AllowedEmailDomain == "" {
			return errMissingAllowedDomain
		}
	}
	return nil
}

var (
	errMissingGoogleCreds   = configError("google auth enabled but GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set")
	errMissingAllowedDomain = configError("google auth enabled but ALLOWED_EMAIL_DOMAIN not set")
)

type configError string

func (e configError) Error() string { return string(e) }

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

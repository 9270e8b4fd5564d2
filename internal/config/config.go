package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr        string
	DatabaseURL string // empty = in-memory store
	RabbitURL   string // empty = notifications disabled
	CORSOrigins []string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Bootstrap admin so a fresh instance is reachable.
	AdminName  string
	AdminEmail string
}

func Load() Config {
	return Config{
		Addr:        getenv("API_ADDR", ":8080"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		RabbitURL:   getenv("RABBITMQ_URL", ""),
		CORSOrigins: []string{getenv("CORS_ORIGIN", "http://localhost:5173"), "*"},

		SMTPHost: getenv("MAIL_HOST", ""),
		SMTPPort: getenvInt("MAIL_PORT", 587),
		SMTPUser: getenv("MAIL_USER", ""),
		SMTPPass: getenv("MAIL_PASS", ""),
		MailFrom: getenv("MAIL_FROM", "nao-responda@dentalcrm.com.br"),

		AdminName:  getenv("ADMIN_NAME", "Administrador"),
		AdminEmail: getenv("ADMIN_EMAIL", "admin@dentalcrm.com.br"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

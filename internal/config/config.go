package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BotToken    string
	DatabaseURL string

	// VietQR transfer destination. BankAccount may be empty; payment-code
	// generation then degrades to a warning instead of failing the flow.
	BankCode    string
	BankAccount string

	TimezoneOffsetHours int
	ReportDir           string
	SessionTTL          time.Duration
	LogLevel            string
}

func MustLoad() Config {
	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	bankCode := os.Getenv("BANK_CODE")
	if bankCode == "" {
		bankCode = "MB"
	}

	off := 7
	if v := os.Getenv("TIMEZONE_OFFSET_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("TIMEZONE_OFFSET_HOURS: %v", err)
		}
		off = n
	}

	dir := os.Getenv("REPORT_DIR")
	if dir == "" {
		dir = "report"
	}

	ttl := 30 * time.Minute
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("SESSION_TTL: %v", err)
		}
		ttl = d
	}

	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		lvl = "info"
	}

	return Config{
		BotToken:            bt,
		DatabaseURL:         dsn,
		BankCode:            bankCode,
		BankAccount:         os.Getenv("BANK_ACCOUNT"),
		TimezoneOffsetHours: off,
		ReportDir:           dir,
		SessionTTL:          ttl,
		LogLevel:            lvl,
	}
}

// Location is the salon's local zone; timestamps and report windows use it.
func (c Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.TimezoneOffsetHours), c.TimezoneOffsetHours*3600)
}

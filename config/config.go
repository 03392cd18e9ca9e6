package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security SecurityConfiguration `json:"security"`

	Sales SalesConfiguration `json:"sales"`
}

// SecurityConfiguration drives token signing. The JWT_SECRET env var, when
// set, takes precedence over the file value.
type SecurityConfiguration struct {
	JwtSecret        string `json:"jwt_secret"`
	TokenMaxValidHrs int    `json:"token_max_valid_hours"`
}

// SalesConfiguration drives the keyword detector and the commission
// calculator. Loaded once at boot and passed in explicitly; nothing reads
// this ad hoc at runtime.
type SalesConfiguration struct {
	StrongKeywords   []string `json:"strong_keywords"`
	WeakKeywords     []string `json:"weak_keywords"`
	KeywordThreshold int      `json:"keyword_threshold"`

	InstagramRate float64 `json:"instagram_rate"`
	WebsiteRate   float64 `json:"website_rate"`
	SmsRate       float64 `json:"sms_rate"`
	DefaultRate   float64 `json:"default_rate"`

	EvidenceWindow int `json:"evidence_window"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.TokenMaxValidHrs <= 0 {
		c.Security.TokenMaxValidHrs = 72
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}

	c.Sales = withSalesDefaults(c.Sales)

	return c
}

func withSalesDefaults(s SalesConfiguration) SalesConfiguration {
	if len(s.StrongKeywords) == 0 {
		s.StrongKeywords = []string{
			"i'll take it",
			"i will take it",
			"payment sent",
			"just bought",
			"just paid",
			"order placed",
			"sent the money",
			"sold",
		}
	}
	if len(s.WeakKeywords) == 0 {
		s.WeakKeywords = []string{
			"buy",
			"purchase",
			"venmo",
			"zelle",
			"cashapp",
			"invoice",
			"deal",
		}
	}
	if s.KeywordThreshold <= 0 {
		s.KeywordThreshold = 2
	}
	if s.InstagramRate <= 0 {
		s.InstagramRate = 0.15
	}
	if s.WebsiteRate <= 0 {
		s.WebsiteRate = 0.10
	}
	if s.SmsRate <= 0 {
		s.SmsRate = 0.10
	}
	if s.DefaultRate <= 0 {
		s.DefaultRate = 0.10
	}
	if s.EvidenceWindow <= 0 {
		s.EvidenceWindow = 20
	}
	return s
}

// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// StoreConfig provides settings for the lead store.
type StoreConfig interface {
	GetRedisURL() string
}

// EnrichmentConfig provides settings for the enrichment provider adapter.
type EnrichmentConfig interface {
	GetEnrichmentAPIURL() string
	GetEnrichmentAPIKey() string
	IsEnrichmentEnabled() bool
}

// CRMConfig provides settings for the CRM adapter.
type CRMConfig interface {
	GetCRMAPIURL() string
	GetCRMAPIKey() string
	IsCRMEnabled() bool
}

// MessagingConfig provides settings for the messaging adapter.
type MessagingConfig interface {
	GetMessagingWebhookURL() string
	IsMessagingEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAlertEmailTo() string
	IsEmailEnabled() bool
}

// TaskingConfig provides settings for the task tracker adapter.
type TaskingConfig interface {
	GetTaskingAPIURL() string
	GetTaskingAPIKey() string
	IsTaskingEnabled() bool
}

// TicketingConfig provides settings for the support ticket adapter.
type TicketingConfig interface {
	GetTicketingAPIURL() string
	GetTicketingAPIKey() string
	IsTicketingEnabled() bool
}

// QuotingConfig provides settings for the CPQ adapter.
type QuotingConfig interface {
	GetQuotingAPIURL() string
	GetQuotingAPIKey() string
	IsQuotingEnabled() bool
}

// ScoringConfig provides settings for the scoring engine and categorizer.
type ScoringConfig interface {
	GetScoreScheme() string
	GetHotMin() int
	GetWarmMin() int
	GetQualifiedMin() int
	GetScoringRulesFile() string
}

// DispatchConfig provides settings for the routing dispatcher.
type DispatchConfig interface {
	GetDealScoreMin() int
	GetNotifyScoreMin() int
	GetTicketScoreMin() int
	GetQuoteScoreMin() int
	GetCollaboratorTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	RedisURL            string
	EnrichmentAPIURL    string
	EnrichmentAPIKey    string
	CRMAPIURL           string
	CRMAPIKey           string
	MessagingWebhookURL string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	AlertEmailTo        string
	EmailEnabled        bool
	TaskingAPIURL       string
	TaskingAPIKey       string
	TicketingAPIURL     string
	TicketingAPIKey     string
	QuotingAPIURL       string
	QuotingAPIKey       string
	ScoreScheme         string
	HotMin              int
	WarmMin             int
	QualifiedMin        int
	ScoringRulesFile    string
	DealScoreMin        int
	NotifyScoreMin      int
	TicketScoreMin      int
	QuoteScoreMin       int
	CollaboratorTimeout time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// StoreConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// EnrichmentConfig implementation
func (c *Config) GetEnrichmentAPIURL() string { return c.EnrichmentAPIURL }
func (c *Config) GetEnrichmentAPIKey() string { return c.EnrichmentAPIKey }
func (c *Config) IsEnrichmentEnabled() bool   { return c.EnrichmentAPIURL != "" }

// CRMConfig implementation
func (c *Config) GetCRMAPIURL() string { return c.CRMAPIURL }
func (c *Config) GetCRMAPIKey() string { return c.CRMAPIKey }
func (c *Config) IsCRMEnabled() bool   { return c.CRMAPIURL != "" }

// MessagingConfig implementation
func (c *Config) GetMessagingWebhookURL() string { return c.MessagingWebhookURL }
func (c *Config) IsMessagingEnabled() bool       { return c.MessagingWebhookURL != "" }
func (c *Config) GetSMTPHost() string            { return c.SMTPHost }
func (c *Config) GetSMTPPort() int               { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string        { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string        { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string       { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string    { return c.EmailFromAddress }
func (c *Config) GetAlertEmailTo() string        { return c.AlertEmailTo }
func (c *Config) IsEmailEnabled() bool {
	return c.EmailEnabled && c.SMTPHost != "" && c.AlertEmailTo != ""
}

// TaskingConfig implementation
func (c *Config) GetTaskingAPIURL() string { return c.TaskingAPIURL }
func (c *Config) GetTaskingAPIKey() string { return c.TaskingAPIKey }
func (c *Config) IsTaskingEnabled() bool   { return c.TaskingAPIURL != "" }

// TicketingConfig implementation
func (c *Config) GetTicketingAPIURL() string { return c.TicketingAPIURL }
func (c *Config) GetTicketingAPIKey() string { return c.TicketingAPIKey }
func (c *Config) IsTicketingEnabled() bool   { return c.TicketingAPIURL != "" }

// QuotingConfig implementation
func (c *Config) GetQuotingAPIURL() string { return c.QuotingAPIURL }
func (c *Config) GetQuotingAPIKey() string { return c.QuotingAPIKey }
func (c *Config) IsQuotingEnabled() bool   { return c.QuotingAPIURL != "" }

// ScoringConfig implementation
func (c *Config) GetScoreScheme() string      { return c.ScoreScheme }
func (c *Config) GetHotMin() int              { return c.HotMin }
func (c *Config) GetWarmMin() int             { return c.WarmMin }
func (c *Config) GetQualifiedMin() int        { return c.QualifiedMin }
func (c *Config) GetScoringRulesFile() string { return c.ScoringRulesFile }

// DispatchConfig implementation
func (c *Config) GetDealScoreMin() int                  { return c.DealScoreMin }
func (c *Config) GetNotifyScoreMin() int                { return c.NotifyScoreMin }
func (c *Config) GetTicketScoreMin() int                { return c.TicketScoreMin }
func (c *Config) GetQuoteScoreMin() int                 { return c.QuoteScoreMin }
func (c *Config) GetCollaboratorTimeout() time.Duration { return c.CollaboratorTimeout }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	scheme := strings.ToUpper(getEnv("SCORE_SCHEME", "A"))

	// Scheme A band floors by default; Scheme B collapses QUALIFIED into COLD.
	hotMin := 85
	warmMin := 60
	qualifiedMin := 40
	if scheme == "B" {
		hotMin = 40
		warmMin = 10
		qualifiedMin = 10
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:            getEnv("REDIS_URL", ""),
		EnrichmentAPIURL:    getEnv("ENRICHMENT_API_URL", ""),
		EnrichmentAPIKey:    getEnv("ENRICHMENT_API_KEY", ""),
		CRMAPIURL:           getEnv("CRM_API_URL", ""),
		CRMAPIKey:           getEnv("CRM_API_KEY", ""),
		MessagingWebhookURL: getEnv("MESSAGING_WEBHOOK_URL", ""),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Leadflow"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		AlertEmailTo:        getEnv("ALERT_EMAIL_TO", ""),
		EmailEnabled:        strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true"),
		TaskingAPIURL:       getEnv("TASKING_API_URL", ""),
		TaskingAPIKey:       getEnv("TASKING_API_KEY", ""),
		TicketingAPIURL:     getEnv("TICKETING_API_URL", ""),
		TicketingAPIKey:     getEnv("TICKETING_API_KEY", ""),
		QuotingAPIURL:       getEnv("QUOTING_API_URL", ""),
		QuotingAPIKey:       getEnv("QUOTING_API_KEY", ""),
		ScoreScheme:         scheme,
		HotMin:              mustInt(getEnv("SCORE_HOT_MIN", strconv.Itoa(hotMin))),
		WarmMin:             mustInt(getEnv("SCORE_WARM_MIN", strconv.Itoa(warmMin))),
		QualifiedMin:        mustInt(getEnv("SCORE_QUALIFIED_MIN", strconv.Itoa(qualifiedMin))),
		ScoringRulesFile:    getEnv("SCORING_RULES_FILE", ""),
		DealScoreMin:        mustInt(getEnv("DEAL_SCORE_MIN", "40")),
		NotifyScoreMin:      mustInt(getEnv("NOTIFY_SCORE_MIN", "60")),
		TicketScoreMin:      mustInt(getEnv("TICKET_SCORE_MIN", "85")),
		QuoteScoreMin:       mustInt(getEnv("QUOTE_SCORE_MIN", "85")),
		CollaboratorTimeout: mustDuration(getEnv("COLLABORATOR_TIMEOUT", "5s")),
	}

	if cfg.ScoreScheme != "A" && cfg.ScoreScheme != "B" {
		return nil, fmt.Errorf("SCORE_SCHEME must be A or B, got %q", cfg.ScoreScheme)
	}
	if !(cfg.HotMin > cfg.WarmMin && cfg.WarmMin >= cfg.QualifiedMin) {
		return nil, fmt.Errorf("score thresholds must satisfy hot > warm >= qualified")
	}
	if cfg.CollaboratorTimeout <= 0 {
		return nil, fmt.Errorf("COLLABORATOR_TIMEOUT must be a positive duration")
	}
	if cfg.EmailEnabled && cfg.SMTPHost != "" && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP is configured")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

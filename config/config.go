package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/JAOCruz/nayib/internal/models"
)

type Config struct {
	// Server configuration
	Server struct {
		Port     string `env:"PORT" envDefault:"5250"`
		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

		// Origins allowed to call the API from the static pages
		CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	// Site the catalog document is published on
	Site struct {
		// Origin of the static site, e.g. https://www.example.com
		Origin string `env:"SITE_ORIGIN" envDefault:"http://localhost:8080"`

		// Page the relative catalog paths are resolved against
		PagePath string `env:"SITE_PAGE_PATH" envDefault:"/property-detail.html"`
	}

	// Catalog loading
	Catalog struct {
		Path string `env:"CATALOG_PATH" envDefault:"data/properties.json"`

		// Optional local copy tried after every remote candidate
		File string `env:"CATALOG_FILE"`

		// Deadline of a single fetch attempt
		FetchTimeout time.Duration `env:"CATALOG_FETCH_TIMEOUT" envDefault:"10s"`

		SolaresPageSize int `env:"SOLARES_PAGE_SIZE" envDefault:"10"`
	}

	CDN struct {
		ConfigPath string `env:"CDN_CONFIG_PATH" envDefault:"config/cdn.yaml"`
	}

	// Contact form relay
	Contact struct {
		Endpoint string        `env:"CONTACT_ENDPOINT" envDefault:"https://submit-form.com/BFgZ45QHC"`
		Timeout  time.Duration `env:"CONTACT_TIMEOUT" envDefault:"10s"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/inquiries.db"`

		// Bearer token guarding GET /api/inquiries, the route is off while empty
		InquiriesAPIToken string `env:"INQUIRIES_API_TOKEN"`
	}

	// Telegram notifications, disabled while the token or chat is empty
	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `env:"TELEGRAM_CHAT_ID"`
		APIURL   string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`

		// Form types to notify about, all of them while empty
		FormTypes []string `env:"TELEGRAM_FORM_TYPES" envSeparator:","`

		// Skip inquiries the form relay did not accept
		DeliveredOnly bool `env:"TELEGRAM_DELIVERED_ONLY" envDefault:"false"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of inquiries to accumulate before processing
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"20"`

		// Maximum time to wait before processing a non-full batch (in seconds)
		MaxBatchWaitTime int `env:"BATCH_WAIT_TIME" envDefault:"5"`

		// Capacity of the inquiry queue
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"100"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"1"`
	}
}

// LoadConfig reads the optional dotenv files and then the environment.
// Variables already set in the environment win over the files.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// BatchWait returns MaxBatchWaitTime as a duration.
func (c *Config) BatchWait() time.Duration {
	return time.Duration(c.BatchProcessing.MaxBatchWaitTime) * time.Second
}

// RetryDelay returns the batch retry delay as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.BatchProcessing.RetryDelay) * time.Second
}

// TelegramEnabled reports whether notifications can be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// TelegramFilters builds the notification filters, nil when nothing is
// filtered.
func (c *Config) TelegramFilters() *models.TelegramFilters {
	var formTypes []string
	for _, formType := range c.Telegram.FormTypes {
		if formType = strings.TrimSpace(formType); formType != "" {
			formTypes = append(formTypes, formType)
		}
	}
	if len(formTypes) == 0 && !c.Telegram.DeliveredOnly {
		return nil
	}
	return &models.TelegramFilters{FormTypes: formTypes, DeliveredOnly: c.Telegram.DeliveredOnly}
}

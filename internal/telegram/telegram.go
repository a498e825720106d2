package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/internal/models"
)

const defaultAPIURL = "https://api.telegram.org"

type Service struct {
	logger  *logrus.Logger
	client  *http.Client
	config  *models.TelegramConfig
	filters *models.TelegramFilters
}

func NewService(config *models.TelegramConfig, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if config == nil {
		config = &models.TelegramConfig{}
	}
	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: config,
	}
}

func (s *Service) SetFilters(filters *models.TelegramFilters) {
	s.filters = filters
}

func (s *Service) Enabled() bool {
	return s.config != nil && s.config.IsEnabled
}

// SendMessage sends a message to the configured Telegram chat
func (s *Service) SendMessage(ctx context.Context, message string) error {
	if !s.Enabled() {
		return nil
	}

	if s.config.BotToken == "" {
		return errors.New("Telegram bot token is not configured")
	}

	if s.config.ChatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	apiURL := strings.TrimSuffix(s.config.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", apiURL, s.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create Telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// NotifyInquiries sends one message per inquiry that passes the filters.
func (s *Service) NotifyInquiries(ctx context.Context, inquiries []*models.Inquiry) error {
	if !s.Enabled() {
		return nil
	}

	var errs []error
	for _, inquiry := range inquiries {
		if !s.filters.IsInquiryAllowed(inquiry) {
			continue
		}
		if err := s.SendMessage(ctx, FormatInquiry(inquiry)); err != nil {
			s.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Error("Failed to send inquiry notification")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FormatInquiry renders an inquiry as an HTML Telegram message.
func FormatInquiry(inquiry *models.Inquiry) string {
	title := "<b>Nueva consulta</b>"
	if inquiry.FormType == models.FormSolarInquiry {
		title = "<b>Nueva consulta de solar</b>"
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	if inquiry.SubjectLocation != "" {
		fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(inquiry.SubjectLocation))
	}
	if inquiry.SubjectID != "" {
		fmt.Fprintf(&b, "🏷️ %s\n", html.EscapeString(inquiry.SubjectID))
	}
	fmt.Fprintf(&b, "👤 %s\n", html.EscapeString(inquiry.Name))
	fmt.Fprintf(&b, "✉️ %s\n", html.EscapeString(inquiry.Email))
	fmt.Fprintf(&b, "📞 %s\n", html.EscapeString(inquiry.Phone))
	if inquiry.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", html.EscapeString(inquiry.Message))
	}
	if inquiry.RelayStatus == models.RelayFailed {
		b.WriteString("\n⚠️ El formulario no pudo reenviarse")
	}
	return strings.TrimRight(b.String(), "\n")
}

package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrRelayRejected is returned when the form relay answers with a non-2xx
// status.
var ErrRelayRejected = errors.New("form relay rejected the submission")

const maxErrorBody = 512

// Relay posts submissions to the external form service.
type Relay struct {
	endpoint string
	client   *http.Client
	logger   *logrus.Logger
}

func NewRelay(endpoint string, timeout time.Duration, logger *logrus.Logger) *Relay {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Relay{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (r *Relay) Send(ctx context.Context, submission Submission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach form relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", ErrRelayRejected, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	r.logger.WithFields(logrus.Fields{
		"endpoint": r.endpoint,
		"status":   resp.StatusCode,
	}).Debug("Form relay accepted submission")
	return nil
}

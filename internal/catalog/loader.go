package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader fetches the catalog from an ordered list of candidate sources. It
// tries them one at a time and stops at the first that yields a parseable
// document.
type Loader struct {
	sources        []Source
	attemptTimeout time.Duration
	logger         *logrus.Logger
}

// NewLoader creates a loader. A non-positive attemptTimeout leaves attempts
// bounded only by the caller's context.
func NewLoader(sources []Source, attemptTimeout time.Duration, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Loader{
		sources:        sources,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Sources returns the candidate names in the order they are tried.
func (l *Loader) Sources() []string {
	names := make([]string, len(l.sources))
	for i, source := range l.sources {
		names[i] = source.Name()
	}
	return names
}

// Load returns the first catalog any candidate yields. When every candidate
// fails the error is a *LoadError describing the last failure. Cancelling ctx
// abandons the remaining candidates.
func (l *Loader) Load(ctx context.Context) (*models.Catalog, error) {
	if len(l.sources) == 0 {
		return nil, &LoadError{Reason: ReasonNetwork, Err: ErrNoSources}
	}

	var lastErr *LoadError
	for i, source := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, &LoadError{Reason: ReasonNetwork, Source: source.Name(), Err: err}
		}

		fields := logrus.Fields{
			"source":  source.Name(),
			"attempt": i + 1,
		}
		l.logger.WithFields(fields).Debug("Fetching catalog")

		catalog, err := l.attempt(ctx, source)
		if err == nil {
			l.logger.WithFields(fields).Info("Catalog loaded")
			return catalog, nil
		}

		lastErr = asLoadError(err, source.Name())
		fields["reason"] = lastErr.Reason
		if lastErr.StatusCode != 0 {
			fields["status"] = lastErr.StatusCode
		}
		l.logger.WithFields(fields).WithError(err).Warn("Catalog candidate failed, trying next")

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &LoadError{Reason: ReasonNetwork, Source: source.Name(), Err: ctxErr}
		}
	}

	l.logger.WithError(lastErr).Error("Failed to load catalog from all candidates")
	return nil, lastErr
}

func (l *Loader) attempt(ctx context.Context, source Source) (*models.Catalog, error) {
	if l.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.attemptTimeout)
		defer cancel()
	}

	body, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := Parse(body)
	if err != nil {
		return nil, &LoadError{Reason: ReasonParse, Source: source.Name(), Err: err}
	}
	return catalog, nil
}

// Parse decodes a catalog document. A document that fails to decode is
// retried once with a leading byte-order mark and surrounding whitespace
// removed.
func Parse(body []byte) (*models.Catalog, error) {
	var catalog models.Catalog
	firstErr := json.Unmarshal(body, &catalog)
	if firstErr == nil {
		return &catalog, nil
	}

	cleaned := bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), utf8BOM))
	if bytes.Equal(cleaned, body) {
		return nil, fmt.Errorf("failed to parse catalog: %w", firstErr)
	}

	catalog = models.Catalog{}
	if err := json.Unmarshal(cleaned, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog after cleaning: %w", err)
	}
	return &catalog, nil
}

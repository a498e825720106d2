// Package contact relays inquiry forms to the form service and records them.
package contact

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/internal/models"
)

// Submission is the payload of a contact form. Field names match what the
// form relay receives.
type Submission struct {
	FormType        string `json:"form_type"`
	SubjectID       string `json:"subject_id"`
	SubjectLocation string `json:"subject_location"`
	Name            string `json:"name" binding:"required,max=200"`
	Email           string `json:"email" binding:"required,email,max=254"`
	Phone           string `json:"phone" binding:"required,max=40"`
	Message         string `json:"message" binding:"max=5000"`
}

var strict = bluemonday.StrictPolicy()

// clean strips markup and surrounding whitespace from user input.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Sanitize returns a copy of the submission without markup, with the form
// type and the solar inquiry message defaulted.
func Sanitize(s Submission) Submission {
	out := Submission{
		FormType:        clean(s.FormType),
		SubjectID:       clean(s.SubjectID),
		SubjectLocation: clean(s.SubjectLocation),
		Name:            clean(s.Name),
		Email:           clean(s.Email),
		Phone:           clean(s.Phone),
		Message:         clean(s.Message),
	}
	if out.FormType == "" {
		out.FormType = models.FormGeneral
	}
	if out.Message == "" && out.FormType == models.FormSolarInquiry {
		out.Message = "Estoy interesado en obtener más información sobre este solar en " + out.SubjectLocation
	}
	return out
}

// Sender delivers a submission to the form relay.
type Sender interface {
	Send(ctx context.Context, submission Submission) error
}

// Enqueuer accepts recorded inquiries for persistence.
type Enqueuer interface {
	Push(inquiry *models.Inquiry) error
}

// Service sanitizes, relays and records contact submissions.
type Service struct {
	sender Sender
	queue  Enqueuer
	logger *logrus.Logger
	now    func() time.Time
}

// NewService builds a contact service. queue may be nil, submissions are then
// relayed but not recorded.
func NewService(sender Sender, queue Enqueuer, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Service{
		sender: sender,
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}
}

// Submit relays a submission and records the outcome. The inquiry is
// returned even when relaying failed, together with the relay error.
func (s *Service) Submit(ctx context.Context, submission Submission) (*models.Inquiry, error) {
	submission = Sanitize(submission)

	inquiry := &models.Inquiry{
		ID:              uuid.NewString(),
		FormType:        submission.FormType,
		SubjectID:       submission.SubjectID,
		SubjectLocation: submission.SubjectLocation,
		Name:            submission.Name,
		Email:           submission.Email,
		Phone:           submission.Phone,
		Message:         submission.Message,
		RelayStatus:     models.RelayDelivered,
		CreatedAt:       s.now().UTC(),
	}

	log := s.logger.WithFields(logrus.Fields{
		"inquiry_id": inquiry.ID,
		"form_type":  inquiry.FormType,
		"subject_id": inquiry.SubjectID,
	})

	relayErr := s.sender.Send(ctx, submission)
	if relayErr != nil {
		inquiry.RelayStatus = models.RelayFailed
		inquiry.RelayError = relayErr.Error()
		log.WithError(relayErr).Warn("Failed to relay contact submission")
	} else {
		log.Info("Relayed contact submission")
	}

	if s.queue != nil {
		if err := s.queue.Push(inquiry); err != nil {
			log.WithError(err).Error("Failed to queue inquiry")
		}
	}

	if relayErr != nil {
		return inquiry, fmt.Errorf("failed to relay submission: %w", relayErr)
	}
	return inquiry, nil
}

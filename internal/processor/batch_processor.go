package processor

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JAOCruz/nayib/config"
	"github.com/JAOCruz/nayib/internal/database"
	"github.com/JAOCruz/nayib/internal/models"
	"github.com/JAOCruz/nayib/internal/queue"
)

// Transactor runs a function inside a database transaction. *gorm.DB
// satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// Notifier announces persisted inquiries.
type Notifier interface {
	NotifyInquiries(ctx context.Context, inquiries []*models.Inquiry) error
}

// BatchProcessor persists inquiry batches coming out of the queue
type BatchProcessor struct {
	db        Transactor
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.InquiryQueue
	notifier  Notifier
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance. notifier may be
// nil.
func NewBatchProcessor(db Transactor, queue *queue.InquiryQueue, notifier Notifier, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:       db,
		queue:    queue,
		notifier: notifier,
		config:   config,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start subscribes the processor to the queue
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.handle)
}

// Stop aborts pending retries and waits for the batch in flight
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

func (p *BatchProcessor) handle(batch []*models.Inquiry) error {
	p.waitGroup.Add(1)
	defer p.waitGroup.Done()

	if err := p.processBatch(batch); err != nil {
		return err
	}

	if p.notifier != nil {
		if err := p.notifier.NotifyInquiries(p.ctx, batch); err != nil {
			p.logger.WithError(err).Warn("Failed to notify inquiries")
		}
	}
	return nil
}

// processBatch handles a single batch of inquiries with transaction and retry logic
func (p *BatchProcessor) processBatch(batch []*models.Inquiry) error {
	attempts := p.config.BatchProcessing.MaxRetries + 1
	delay := p.config.RetryDelay()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, attempts)
			select {
			case <-p.ctx.Done():
				return fmt.Errorf("batch processing cancelled: %w", p.ctx.Err())
			case <-time.After(delay):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertInquiries(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert inquiries batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.WithField("batch_size", len(batch)).Info("Successfully processed inquiry batch")
			return nil
		}

		p.logger.WithError(err).Error("Batch processing failed")
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", attempts, err)
}

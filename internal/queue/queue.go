package queue

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler processes one batch of inquiries.
type Handler func([]*models.Inquiry) error

// InquiryQueue is an in-memory queue that groups inquiries into batches. A
// batch is flushed when it reaches maxBatch items or when maxWait has passed
// since its first item.
type InquiryQueue struct {
	items    chan *models.Inquiry
	stopped  chan struct{}
	maxBatch int
	maxWait  time.Duration
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []Handler
}

// NewInquiryQueue creates a queue holding at most bufferSize pending
// inquiries.
func NewInquiryQueue(bufferSize, maxBatch int, maxWait time.Duration, logger *logrus.Logger) *InquiryQueue {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if maxBatch <= 0 {
		maxBatch = 1
	}
	if maxWait <= 0 {
		maxWait = time.Second
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &InquiryQueue{
		items:    make(chan *models.Inquiry, bufferSize),
		stopped:  make(chan struct{}),
		maxBatch: maxBatch,
		maxWait:  maxWait,
		logger:   logger,
	}
}

// Push adds an inquiry to the queue without blocking.
func (q *InquiryQueue) Push(inquiry *models.Inquiry) error {
	// The read lock is held across the send so Close cannot close the
	// channel underneath it.
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- inquiry:
		q.logger.WithField("inquiry_id", inquiry.ID).Debug("Pushed inquiry to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *InquiryQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue. Calling it twice is a no-op.
func (q *InquiryQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

// process collects inquiries into batches until the queue is closed, then
// flushes what is left.
func (q *InquiryQueue) process() {
	defer close(q.stopped)

	var batch []*models.Inquiry
	timer := time.NewTimer(q.maxWait)
	timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		q.processBatch(batch)
		batch = nil
	}

	for {
		select {
		case inquiry, ok := <-q.items:
			if !ok {
				timer.Stop()
				flush()
				return
			}
			if len(batch) == 0 {
				timer.Reset(q.maxWait)
			}
			batch = append(batch, inquiry)
			if len(batch) >= q.maxBatch {
				timer.Stop()
				flush()
			}
		case <-timer.C:
			flush()
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *InquiryQueue) processBatch(batch []*models.Inquiry) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	q.logger.WithField("batch_size", len(batch)).Debug("Flushing inquiry batch")
	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops accepting inquiries and waits until the pending ones have been
// handed to the handlers.
func (q *InquiryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.items)
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

// Len returns the current number of queued inquiries
func (q *InquiryQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *InquiryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"techcommerce/frontend/domain"
)

var (
	// ErrBufferFull is returned when the record buffer channel is full
	ErrBufferFull = errors.New("access log buffer is full")
)

var _ domain.AccessLogSink = &AccessLogBatcher{}

// AccessRecordWriter persists a batch of access records
type AccessRecordWriter interface {
	SaveAccessRecords(ctx context.Context, records []domain.AccessRecord) error
}

// AccessLogBatcher batches access records and flushes them to a writer
type AccessLogBatcher struct {
	recordChan    chan domain.AccessRecord
	batchSize     int
	flushInterval time.Duration
	writer        AccessRecordWriter
	logger        *slog.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	mu            sync.Mutex
	isRunning     bool
	currentBatch  []domain.AccessRecord
}

// NewAccessLogBatcher creates a new AccessLogBatcher instance
func NewAccessLogBatcher(
	capacity int,
	batchSize int,
	flushInterval time.Duration,
	writer AccessRecordWriter,
	logger *slog.Logger,
) *AccessLogBatcher {
	if capacity < 0 {
		capacity = 0
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if flushInterval <= 0 {
		flushInterval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AccessLogBatcher{
		recordChan:    make(chan domain.AccessRecord, capacity),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		writer:        writer,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		currentBatch:  make([]domain.AccessRecord, 0, batchSize),
	}
}

// Start launches the background worker goroutine that processes records
func (b *AccessLogBatcher) Start() {
	b.mu.Lock()
	if b.isRunning {
		b.mu.Unlock()
		return
	}
	b.isRunning = true
	b.mu.Unlock()

	b.wg.Add(1)
	go b.worker()
	b.logger.Debug("AccessLogBatcher started")
}

// Enqueue adds a record to the buffer channel without blocking.
// Returns ErrBufferFull if the channel is full.
func (b *AccessLogBatcher) Enqueue(record domain.AccessRecord) error {
	select {
	case b.recordChan <- record:
		return nil
	default:
		return ErrBufferFull
	}
}

// Record implements domain.AccessLogSink
func (b *AccessLogBatcher) Record(_ context.Context, record domain.AccessRecord) error {
	return b.Enqueue(record)
}

func (b *AccessLogBatcher) worker() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			b.flushRemaining()
			return

		case record := <-b.recordChan:
			b.mu.Lock()
			b.currentBatch = append(b.currentBatch, record)
			shouldFlush := len(b.currentBatch) >= b.batchSize
			b.mu.Unlock()

			if shouldFlush {
				b.flushBatch()
			}

		case <-ticker.C:
			b.mu.Lock()
			hasRecords := len(b.currentBatch) > 0
			b.mu.Unlock()

			if hasRecords {
				b.flushBatch()
			}
		}
	}
}

func (b *AccessLogBatcher) flushBatch() {
	b.mu.Lock()
	if len(b.currentBatch) == 0 {
		b.mu.Unlock()
		return
	}

	batch := make([]domain.AccessRecord, len(b.currentBatch))
	copy(batch, b.currentBatch)
	b.currentBatch = b.currentBatch[:0]
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.writer.SaveAccessRecords(ctx, batch); err != nil {
		b.logger.Warn("AccessLogBatcher: failed to flush batch", "count", len(batch), "error", err)
		return
	}

	b.logger.Debug("AccessLogBatcher: flushed batch", "count", len(batch))
}

// flushRemaining flushes the pending batch and drains the channel during shutdown
func (b *AccessLogBatcher) flushRemaining() {
	for {
		select {
		case record := <-b.recordChan:
			b.mu.Lock()
			b.currentBatch = append(b.currentBatch, record)
			full := len(b.currentBatch) >= b.batchSize
			b.mu.Unlock()
			if full {
				b.flushBatch()
			}
		default:
			b.flushBatch()
			return
		}
	}
}

// Shutdown stops the worker after flushing everything still buffered
func (b *AccessLogBatcher) Shutdown() error {
	b.mu.Lock()
	if !b.isRunning {
		b.mu.Unlock()
		return nil
	}
	b.isRunning = false
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
	b.logger.Debug("AccessLogBatcher: shutdown complete")
	return nil
}

// GetBufferSize returns the current number of records in the buffer channel
func (b *AccessLogBatcher) GetBufferSize() int {
	return len(b.recordChan)
}

// GetBatchSize returns the current number of records in the pending batch
func (b *AccessLogBatcher) GetBatchSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.currentBatch)
}

package analytics

import (
	"Dealbies-Backend/internal/config"
	"Dealbies-Backend/internal/domain"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNotStarted = errors.New("processor not started")
	ErrQueueFull  = errors.New("analytics queue is full")
	ErrStopping   = errors.New("processor is shutting down")
)

// Sink persists a single click. service.ClickTracker is the production sink.
type Sink interface {
	Record(ctx context.Context, click *domain.ClickTracking) error
}

// ProcessorConfig holds configuration for the analytics processor
type ProcessorConfig struct {
	WorkerCount     int           // Number of worker goroutines
	BufferSize      int           // Size of the job queue buffer
	RetryAttempts   int           // Number of attempts per click, including the first
	RetryDelay      time.Duration // Base delay between retries
	AttemptTimeout  time.Duration // Deadline for a single sink call
	ShutdownTimeout time.Duration // Time to wait for graceful shutdown
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{
		WorkerCount:     3,
		BufferSize:      1000,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
		AttemptTimeout:  10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// ConfigFrom maps application settings onto the processor configuration
func ConfigFrom(cfg config.Analytics, shutdown time.Duration) ProcessorConfig {
	pc := DefaultConfig()
	if cfg.Workers > 0 {
		pc.WorkerCount = cfg.Workers
	}
	if cfg.BufferSize > 0 {
		pc.BufferSize = cfg.BufferSize
	}
	if cfg.RetryAttempts > 0 {
		pc.RetryAttempts = cfg.RetryAttempts
	}
	if cfg.RetryDelay > 0 {
		pc.RetryDelay = cfg.RetryDelay
	}
	if shutdown > 0 {
		pc.ShutdownTimeout = shutdown
	}
	return pc
}

// Processor writes clicks in the background so the redirect does not wait
// for the database. Clicks still queued at shutdown are drained before Stop returns.
type Processor struct {
	config   ProcessorConfig
	sink     Sink
	log      *zap.Logger
	jobQueue chan *domain.ClickTracking
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex

	processed uint64
	failed    uint64
	dropped   uint64
	statsMu   sync.Mutex
}

// NewProcessor creates a new analytics processor
func NewProcessor(sink Sink, log *zap.Logger, config ProcessorConfig) *Processor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		config:   config,
		sink:     sink,
		log:      log,
		jobQueue: make(chan *domain.ClickTracking, config.BufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins processing analytics data
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("processor already started")
	}

	p.log.Info("starting analytics processor",
		zap.Int("workers", p.config.WorkerCount),
		zap.Int("buffer_size", p.config.BufferSize),
		zap.Int("retry_attempts", p.config.RetryAttempts),
	)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.started = true
	return nil
}

// Stop closes the queue, lets workers drain it and waits for them
func (p *Processor) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return ErrNotStarted
	}

	p.log.Info("stopping analytics processor", zap.Int("queued", len(p.jobQueue)))

	close(p.jobQueue)
	p.started = false

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.log.Info("analytics processor stopped gracefully")
		return nil
	case <-time.After(p.config.ShutdownTimeout):
		// прерываем ретраи и запросы в полете
		p.cancel()
		p.log.Warn("analytics processor shutdown timeout reached")
		return fmt.Errorf("shutdown timeout reached")
	}
}

// Record queues a click. It never blocks: a full queue drops the click.
func (p *Processor) Record(_ context.Context, click *domain.ClickTracking) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return ErrNotStarted
	}

	select {
	case <-p.ctx.Done():
		return ErrStopping
	default:
	}

	select {
	case p.jobQueue <- click:
		p.log.Debug("click queued", zap.String("slug", click.Slug))
		return nil
	default:
		p.count(&p.dropped)
		p.log.Error("analytics queue is full, dropping click",
			zap.String("slug", click.Slug),
			zap.Int("queue_size", len(p.jobQueue)),
		)
		return ErrQueueFull
	}
}

// worker processes clicks until the queue is closed
func (p *Processor) worker(workerID int) {
	defer p.wg.Done()

	log := p.log.With(zap.Int("worker_id", workerID))
	log.Debug("analytics worker started")

	for click := range p.jobQueue {
		p.processWithRetry(log, click)
	}

	log.Debug("analytics worker stopped")
}

// processWithRetry calls the sink with exponential backoff between attempts
func (p *Processor) processWithRetry(log *zap.Logger, click *domain.ClickTracking) {
	attempts := p.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(p.ctx, p.config.AttemptTimeout)
		err := p.sink.Record(ctx, click)
		cancel()

		if err == nil {
			if attempt > 1 {
				log.Info("click recorded after retry",
					zap.String("slug", click.Slug),
					zap.Int("attempt", attempt),
				)
			}
			p.count(&p.processed)
			return
		}

		lastErr = err
		log.Warn("click recording failed",
			zap.String("slug", click.Slug),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)

		if attempt == attempts {
			break
		}

		delay := p.config.RetryDelay * time.Duration(1<<(attempt-1))
		select {
		case <-time.After(delay):
		case <-p.ctx.Done():
			log.Info("worker shutdown during retry delay")
			p.count(&p.failed)
			return
		}
	}

	p.count(&p.failed)
	log.Error("click lost after all retries",
		zap.String("slug", click.Slug),
		zap.Int("attempts", attempts),
		zap.Error(lastErr),
	)
}

func (p *Processor) count(c *uint64) {
	p.statsMu.Lock()
	*c++
	p.statsMu.Unlock()
}

// GetStats returns processor statistics
func (p *Processor) GetStats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.statsMu.Lock()
	defer p.statsMu.Unlock()

	return map[string]interface{}{
		"started":        p.started,
		"queue_length":   len(p.jobQueue),
		"queue_capacity": cap(p.jobQueue),
		"worker_count":   p.config.WorkerCount,
		"retry_attempts": p.config.RetryAttempts,
		"processed":      p.processed,
		"failed":         p.failed,
		"dropped":        p.dropped,
	}
}

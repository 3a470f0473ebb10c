package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"shortfactory/internal/dto"
	"shortfactory/internal/service"
	"shortfactory/log"
)

const (
	defaultQueueSize   = 128
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

// DefaultConfig returns a single-machine-friendly default config.
func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// VideoTaskPayload contains video creation enqueue data.
type VideoTaskPayload struct {
	TaskID  string             `json:"task_id"`
	Request dto.CreateVideoReq `json:"request"`
}

// Runner executes queued video tasks with in-memory workers.
type Runner struct {
	service *service.Service
	config  Config

	queue  chan VideoTaskPayload
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}

	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan VideoTaskPayload, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// SubmitVideoTask queues a video creation job.
func (r *Runner) SubmitVideoTask(payload VideoTaskPayload) error {
	if payload.Request.Topic == "" {
		return errors.New("video task topic is required")
	}

	if r.closed.Load() {
		return ErrRunnerStopped
	}

	select {
	case <-r.ctx.Done():
		return ErrRunnerStopped
	case r.queue <- payload:
		log.GetLogger().Info("[TaskRunner] task submitted",
			zap.String("task_id", payload.TaskID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case task := <-r.queue:
			r.processTask(workerID, task)
		}
	}
}

func (r *Runner) processTask(workerID int, payload VideoTaskPayload) {
	err := r.service.RunVideoTask(r.ctx, payload.TaskID, payload.Request)
	if err != nil {
		log.GetLogger().Error("[TaskRunner] task failed",
			zap.Int("worker_id", workerID),
			zap.String("task_id", payload.TaskID),
			zap.Error(err))
		return
	}

	log.GetLogger().Info("[TaskRunner] task completed",
		zap.Int("worker_id", workerID),
		zap.String("task_id", payload.TaskID))
}

// Close stops workers and rejects new tasks.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued tasks waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}

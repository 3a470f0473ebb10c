// Package queue provides background task processing using Asynq for
// deployments with Redis; single-machine installs use the in-process runner
// instead.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"shortfactory/internal/dto"
	"shortfactory/internal/service"
	"shortfactory/log"
)

// Task type names
const (
	TypeVideoCreate = "video:create"
)

// VideoTaskPayload contains the data for a video creation task
type VideoTaskPayload struct {
	TaskID  string             `json:"task_id"`
	Request dto.CreateVideoReq `json:"request"`
}

// QueueConfig holds Redis configuration for Asynq
type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// Queue manages task enqueueing and processing
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	config QueueConfig
}

// DefaultConfig returns default queue configuration
func DefaultConfig() QueueConfig {
	return QueueConfig{
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		Concurrency: 2,
	}
}

// NewQueue creates a new Queue instance
func NewQueue(cfg QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 10s, 20s, 40s, 80s, ...
				return time.Duration(10<<uint(n)) * time.Second
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("Task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: client,
		server: server,
		config: cfg,
	}
}

// EnqueueVideoTask adds a video creation task to the queue
func (q *Queue) EnqueueVideoTask(payload VideoTaskPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeVideoCreate, data,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Task enqueued",
		zap.String("task_id", payload.TaskID),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))

	return nil
}

// Start runs the worker loop against svc. Blocks until Shutdown.
func (q *Queue) Start(svc *service.Service) error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeVideoCreate, func(ctx context.Context, t *asynq.Task) error {
		var payload VideoTaskPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		return svc.RunVideoTask(ctx, payload.TaskID, payload.Request)
	})
	return q.server.Run(mux)
}

// Close gracefully shuts down the queue
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}

// Client returns the underlying Asynq client for advanced usage
func (q *Queue) Client() *asynq.Client {
	return q.client
}

// Server returns the underlying Asynq server for advanced usage
func (q *Queue) Server() *asynq.Server {
	return q.server
}

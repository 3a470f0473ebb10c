package handler

import (
	"go.uber.org/zap"

	"shortfactory/config"
	"shortfactory/internal/queue"
	"shortfactory/internal/service"
	"shortfactory/internal/taskrunner"
	"shortfactory/log"
)

type Handler struct {
	Service *service.Service
	Runner  *taskrunner.Runner
	Queue   *queue.Queue
}

// NewHandler builds the service and the task backend. With Redis configured
// tasks go through Asynq; otherwise the in-process runner handles them.
func NewHandler() *Handler {
	svc := service.NewService()
	h := &Handler{Service: svc}

	if config.Conf.Queue.UseRedis {
		q := queue.NewQueue(queue.QueueConfig{
			RedisAddr:     config.Conf.Queue.RedisAddr,
			RedisPassword: config.Conf.Queue.RedisPassword,
			RedisDB:       config.Conf.Queue.RedisDB,
			Concurrency:   config.Conf.Queue.Concurrency,
		})
		h.Queue = q
		go func() {
			if err := q.Start(svc); err != nil {
				log.GetLogger().Error("queue worker stopped", zap.Error(err))
			}
		}()
	} else {
		h.Runner = taskrunner.New(svc, taskrunner.Config{
			Concurrency: config.Conf.Queue.Concurrency,
		})
	}
	return h
}

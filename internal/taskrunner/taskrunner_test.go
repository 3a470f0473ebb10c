package taskrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shortfactory/internal/dto"
	"shortfactory/internal/service"
)

func TestSubmitVideoTaskRequiresTopic(t *testing.T) {
	runner := New(&service.Service{}, DefaultConfig())
	defer runner.Close()

	err := runner.SubmitVideoTask(VideoTaskPayload{TaskID: "t1"})
	assert.Error(t, err)
}

func TestSubmitVideoTaskAfterClose(t *testing.T) {
	runner := New(&service.Service{}, DefaultConfig())
	runner.Close()

	err := runner.SubmitVideoTask(VideoTaskPayload{
		TaskID:  "t1",
		Request: dto.CreateVideoReq{Topic: "aurora timelapses"},
	})
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestCloseIsIdempotent(t *testing.T) {
	runner := New(&service.Service{}, DefaultConfig())
	runner.Close()
	runner.Close()
}

func TestNormalizeConfigAppliesDefaults(t *testing.T) {
	cfg := normalizeConfig(Config{})
	assert.Equal(t, defaultQueueSize, cfg.QueueSize)
	assert.Equal(t, defaultConcurrency, cfg.Concurrency)

	cfg = normalizeConfig(Config{QueueSize: 4, Concurrency: 1})
	assert.Equal(t, 4, cfg.QueueSize)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestPendingStartsEmpty(t *testing.T) {
	runner := New(&service.Service{}, DefaultConfig())
	defer runner.Close()

	assert.Equal(t, 0, runner.Pending())
}

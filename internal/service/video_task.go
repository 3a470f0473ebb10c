package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shortfactory/internal/appdirs"
	"shortfactory/internal/dto"
	"shortfactory/internal/engine"
	"shortfactory/internal/storage"
	"shortfactory/internal/types"
	"shortfactory/log"
	"shortfactory/pkg/errors"
	"shortfactory/pkg/util"
)

// maxTitleRunes keeps generated titles within the varchar the task table uses.
const maxTitleRunes = 120

var appDirsResolver = appdirs.Resolve

// RunVideoTask executes the creation pipeline for an already-persisted task,
// updating the stored record as stages complete. Intended to run inside a
// worker; it recovers from panics so one bad render cannot kill the pool.
func (s *Service) RunVideoTask(ctx context.Context, taskId string, req dto.CreateVideoReq) (err error) {
	task, getErr := storage.GetTask(taskId)
	if getErr != nil {
		return errors.Wrap(errors.CodeDBError, "Database error", getErr)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("video task panicked: %v", r)
			log.GetLogger().Error("RunVideoTask panic recovered",
				zap.String("task_id", taskId), zap.Any("panic", r))
		}
		if err != nil {
			task.Status = types.RenderTaskStatusFailed
			task.FailReason = err.Error()
			task.StatusMsg = "Failed"
			_ = storage.SaveTask(task)
		}
	}()

	workDir, dirErr := taskDir(taskId)
	if dirErr != nil {
		return dirErr
	}

	progress := func(pct uint8, msg string) {
		task.ProcessPct = pct
		task.StatusMsg = msg
		if saveErr := storage.SaveTask(task); saveErr != nil {
			log.GetLogger().Warn("failed to persist task progress",
				zap.String("task_id", taskId), zap.Error(saveErr))
		}
	}

	outputs, script, err := s.Engine.CreateVideo(ctx, engine.CreateVideoRequest{
		TaskId:    taskId,
		Topic:     req.Topic,
		Style:     req.Style,
		Quality:   types.ParseQuality(req.Quality),
		MusicMood: req.MusicMood,
		Platforms: req.Platforms,
		ClipCount: req.ClipCount,
		Duration:  req.Duration,
		WorkDir:   workDir,
		Progress:  progress,
	})
	if err != nil {
		return err
	}

	task.Title = util.TruncateRunes(script.Title, maxTitleRunes)
	task.Status = types.RenderTaskStatusSuccess
	task.StatusMsg = "Completed"
	task.ProcessPct = 100
	task.Outputs = make([]types.RenderOutput, 0, len(outputs))
	for _, out := range outputs {
		task.Outputs = append(task.Outputs, types.RenderOutput{
			RenderTaskId: task.Id,
			Platform:     out.Platform,
			Path:         out.Path,
			DownloadUrl:  out.RemoteKey,
		})
	}
	if saveErr := storage.SaveTask(task); saveErr != nil {
		return errors.Wrap(errors.CodeDBError, "Database error", saveErr)
	}
	log.GetLogger().Info("video task completed",
		zap.String("task_id", taskId), zap.Int("outputs", len(outputs)))
	return nil
}

// GetTaskStatus reads the current state of a task.
func (s *Service) GetTaskStatus(req dto.GetVideoTaskReq) (*dto.GetVideoTaskResData, error) {
	task, err := storage.GetTask(req.TaskId)
	if err != nil {
		return nil, errors.Wrap(errors.CodeNotFound, "Resource not found", err)
	}
	return &dto.GetVideoTaskResData{
		TaskId:         task.TaskId,
		Status:         task.Status,
		ProcessPercent: task.ProcessPct,
		StatusMsg:      task.StatusMsg,
		FailReason:     task.FailReason,
		Title:          task.Title,
		Outputs:        task.Outputs,
	}, nil
}

func taskDir(taskId string) (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", errors.Wrap(errors.CodeFileWriteError, "Failed to resolve task directory", err)
	}
	return appdirs.TaskDirFor(dirs, taskId), nil
}

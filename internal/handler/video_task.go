package handler

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortfactory/config"
	"shortfactory/internal/dto"
	"shortfactory/internal/queue"
	"shortfactory/internal/response"
	"shortfactory/internal/service"
	"shortfactory/internal/storage"
	"shortfactory/internal/taskrunner"
	"shortfactory/internal/types"
	"shortfactory/log"
	apperrors "shortfactory/pkg/errors"
)

func (h *Handler) CreateVideoTask(c *gin.Context) {
	var req dto.CreateVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("CreateVideoTask ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("CreateVideoTask received request", zap.Any("req", req))

	if configUpdated {
		log.GetLogger().Info("config updated, reinitializing service")
		h.Service = service.NewService()
		configUpdated = false
	}

	if req.Style == "" {
		req.Style = config.Conf.Video.DefaultStyle
	}
	if req.Quality == "" {
		req.Quality = config.Conf.Video.DefaultQuality
	}

	taskId := uuid.New().String()
	task := &types.RenderTask{
		TaskId:    taskId,
		Topic:     req.Topic,
		Style:     req.Style,
		Quality:   req.Quality,
		MusicMood: req.MusicMood,
		Status:    types.RenderTaskStatusProcessing,
		StatusMsg: "Queued",
	}
	if err := storage.SaveTask(task); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Database error", err))
		return
	}

	var submitErr error
	if h.Queue != nil {
		submitErr = h.Queue.EnqueueVideoTask(queue.VideoTaskPayload{TaskID: taskId, Request: req})
	} else {
		submitErr = h.Runner.SubmitVideoTask(taskrunner.VideoTaskPayload{TaskID: taskId, Request: req})
	}
	if submitErr != nil {
		task.Status = types.RenderTaskStatusFailed
		task.FailReason = submitErr.Error()
		task.StatusMsg = "Failed to queue"
		_ = storage.SaveTask(task)
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Failed to queue task", submitErr))
		return
	}

	response.Success(c, dto.CreateVideoResData{TaskId: taskId})
}

func (h *Handler) GetVideoTask(c *gin.Context) {
	var req dto.GetVideoTaskReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "Invalid parameters",
			Data:  nil,
		})
		return
	}

	data, err := h.Service.GetTaskStatus(req)
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   err.Error(),
			Data:  nil,
		})
		return
	}
	response.R(c, response.Response{
		Error: 0,
		Msg:   "Success",
		Data:  data,
	})
}

func (h *Handler) GetTaskHistory(c *gin.Context) {
	tasks, err := storage.GetTaskHistory(200)
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "Failed to load history: " + err.Error(),
			Data:  nil,
		})
		return
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "Success",
		Data:  tasks,
	})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "taskId is required",
			Data:  nil,
		})
		return
	}

	// Remove rendered files first; a partial cleanup still deletes the row.
	for _, taskBasePath := range taskDirCandidates(taskId) {
		if err := os.RemoveAll(taskBasePath); err != nil {
			log.GetLogger().Error("DeleteTask RemoveAll err", zap.String("path", taskBasePath), zap.Error(err))
		}
	}

	if err := storage.DeleteTask(taskId); err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "Failed to delete record: " + err.Error(),
			Data:  nil,
		})
		return
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "Deleted",
		Data:  nil,
	})
}

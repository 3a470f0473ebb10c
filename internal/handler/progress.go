package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shortfactory/internal/dto"
	"shortfactory/internal/types"
	"shortfactory/log"
)

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from the same process; task ids are unguessable.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const progressPollInterval = time.Second

// TaskProgress streams task status over a websocket until the task reaches
// a terminal state or the client goes away.
func (h *Handler) TaskProgress(c *gin.Context) {
	taskId := c.Query("taskId")
	if taskId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}

	conn, err := progressUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("TaskProgress upgrade err", zap.Error(err))
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	for {
		data, err := h.Service.GetTaskStatus(dto.GetVideoTaskReq{TaskId: taskId})
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": err.Error()})
			return
		}
		if err := conn.WriteJSON(data); err != nil {
			return
		}
		if data.Status == types.RenderTaskStatusSuccess || data.Status == types.RenderTaskStatusFailed {
			return
		}

		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

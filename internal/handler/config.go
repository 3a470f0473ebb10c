package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortfactory/config"
	"shortfactory/internal/response"
	"shortfactory/log"
)

// configUpdated is checked by the task handlers so a saved config change
// rebuilds the service clients before the next task starts.
var configUpdated bool

func (h *Handler) GetConfig(c *gin.Context) {
	response.R(c, response.Response{
		Error: 0,
		Msg:   "Success",
		Data:  config.Conf,
	})
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req config.Config
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("UpdateConfig ShouldBindJSON err", zap.Error(err))
		response.R(c, response.Response{
			Error: -1,
			Msg:   "Invalid config payload: " + err.Error(),
			Data:  nil,
		})
		return
	}

	if req.App.Proxy != "" {
		parsed, err := url.Parse(req.App.Proxy)
		if err != nil {
			response.R(c, response.Response{
				Error: -1,
				Msg:   "Invalid proxy address: " + err.Error(),
				Data:  nil,
			})
			return
		}
		req.App.ParsedProxy = parsed
	}

	config.Conf = req
	if err := config.SaveConfig(); err != nil {
		log.GetLogger().Error("UpdateConfig SaveConfig err", zap.Error(err))
		response.R(c, response.Response{
			Error: -1,
			Msg:   "Failed to save config: " + err.Error(),
			Data:  nil,
		})
		return
	}
	configUpdated = true

	response.R(c, response.Response{
		Error: 0,
		Msg:   "Config saved",
		Data:  nil,
	})
}

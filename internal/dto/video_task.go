package dto

import "shortfactory/internal/types"

type CreateVideoReq struct {
	Topic     string   `json:"topic" binding:"required"`
	Style     string   `json:"style"`
	Quality   string   `json:"quality"`
	MusicMood string   `json:"music_mood"`
	Platforms []string `json:"platforms"`
	ClipCount int      `json:"clip_count"`
	Duration  float64  `json:"duration"`
}

type CreateVideoResData struct {
	TaskId string `json:"task_id"`
}

type GetVideoTaskReq struct {
	TaskId string `form:"taskId" binding:"required"`
}

type GetVideoTaskResData struct {
	TaskId         string               `json:"task_id"`
	Status         uint8                `json:"status"`
	ProcessPercent uint8                `json:"process_percent"`
	StatusMsg      string               `json:"status_msg"`
	FailReason     string               `json:"fail_reason"`
	Title          string               `json:"title"`
	Outputs        []types.RenderOutput `json:"outputs"`
}

type TemplateInfo struct {
	Name        string   `json:"name"`
	Transition  string   `json:"transition"`
	Overlay     string   `json:"overlay"`
	TitleEffect string   `json:"title_effect"`
	Effects     []string `json:"effects"`
}

package types

import "time"

// RenderTaskStatus values
const (
	RenderTaskStatusProcessing uint8 = iota + 1
	RenderTaskStatusSuccess
	RenderTaskStatusFailed
)

// RenderTask is the persisted record of one video-creation request.
type RenderTask struct {
	Id         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskId     string `json:"task_id" gorm:"index:idx_task_id,unique"`
	Topic      string `json:"topic"`
	Style      string `json:"style"`
	Quality    string `json:"quality"`
	MusicMood  string `json:"music_mood"`
	Status     uint8  `json:"status"`
	StatusMsg  string `json:"status_msg"`
	FailReason string `json:"fail_reason"`
	ProcessPct uint8  `json:"process_percent"`
	Title      string `json:"title"`

	Outputs []RenderOutput `json:"outputs" gorm:"foreignKey:RenderTaskId;references:Id"`

	CreateTime time.Time `json:"create_time" gorm:"autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"autoUpdateTime"`
}

// RenderOutput is one exported file for a platform.
type RenderOutput struct {
	Id           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	RenderTaskId int64  `json:"render_task_id" gorm:"index"`
	Platform     string `json:"platform"`
	Path         string `json:"path"`
	DownloadUrl  string `json:"download_url"`
}

// Script is the structured output of script generation.
type Script struct {
	Title    string   `json:"title"`
	Intro    string   `json:"intro"`
	Main     string   `json:"main"`
	Outro    string   `json:"outro"`
	Captions []string `json:"captions"`
}

// TextContent carries the overlay text for one render. Zero-value fields mean
// "no such overlay"; templates skip them.
type TextContent struct {
	Title    string
	Intro    string
	Main     string
	Outro    string
	Captions []string
}

// TextContent converts a script into the overlay mapping templates consume.
func (s Script) TextContent() TextContent {
	return TextContent{
		Title:    s.Title,
		Intro:    s.Intro,
		Main:     s.Main,
		Outro:    s.Outro,
		Captions: s.Captions,
	}
}

// Quality presets map to export bitrate/fps pairs.
type Quality string

const (
	QualityDraft    Quality = "draft"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

// QualitySettings is one row of the export quality table.
type QualitySettings struct {
	Bitrate string
	Fps     int
}

var qualityTable = map[Quality]QualitySettings{
	QualityDraft:    {Bitrate: "1000k", Fps: 24},
	QualityStandard: {Bitrate: "2500k", Fps: 30},
	QualityHigh:     {Bitrate: "5000k", Fps: 60},
}

// Settings returns the bitrate/fps pair for q, falling back to standard for
// unknown values.
func (q Quality) Settings() QualitySettings {
	if s, ok := qualityTable[q]; ok {
		return s
	}
	return qualityTable[QualityStandard]
}

// ParseQuality normalizes a user-supplied quality name.
func ParseQuality(name string) Quality {
	switch name {
	case "draft", "Draft":
		return QualityDraft
	case "high", "High", "High Quality":
		return QualityHigh
	default:
		return QualityStandard
	}
}

// Supported target platforms. All current platforms share the 9:16 frame.
const (
	PlatformYouTubeShorts  = "youtube_shorts"
	PlatformInstagramReels = "instagram_reels"
	PlatformTikTok         = "tiktok"
)

// PlatformDimensions returns the export resolution for a platform.
func PlatformDimensions(platform string) (int, int) {
	switch platform {
	case PlatformYouTubeShorts, PlatformInstagramReels, PlatformTikTok:
		return 1080, 1920
	default:
		return 1080, 1920
	}
}

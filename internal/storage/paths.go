package storage

// Paths to the external media tools, overridden from config at startup.
var (
	FfmpegPath  = "ffmpeg"
	FfprobePath = "ffprobe"
)

// SetToolPaths overrides the ffmpeg/ffprobe binaries. Empty values keep the
// current paths.
func SetToolPaths(ffmpeg, ffprobe string) {
	if ffmpeg != "" {
		FfmpegPath = ffmpeg
	}
	if ffprobe != "" {
		FfprobePath = ffprobe
	}
}

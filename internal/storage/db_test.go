package storage

import (
	"path/filepath"
	"testing"

	"shortfactory/internal/appdirs"
)

func TestResolveDBPathUsesCacheDir(t *testing.T) {
	originalResolver := appDirsResolver
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})

	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, "cache-root")
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			OutputDir: filepath.Join(tempDir, "output-root"),
			CacheDir:  cacheDir,
		}, nil
	}

	got, err := resolveDBPath()
	if err != nil {
		t.Fatalf("resolveDBPath() returned error: %v", err)
	}

	want := filepath.Join(cacheDir, "shortfactory.db")
	if got != want {
		t.Fatalf("resolveDBPath() = %q, want %q", got, want)
	}
}

func TestSetToolPaths(t *testing.T) {
	origF, origP := FfmpegPath, FfprobePath
	t.Cleanup(func() {
		FfmpegPath, FfprobePath = origF, origP
	})

	SetToolPaths("/opt/ffmpeg", "")
	if FfmpegPath != "/opt/ffmpeg" {
		t.Fatalf("FfmpegPath = %q, want /opt/ffmpeg", FfmpegPath)
	}
	if FfprobePath != origP {
		t.Fatalf("FfprobePath changed unexpectedly to %q", FfprobePath)
	}
}

package deps

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func notFoundErr(command string) error {
	return &exec.Error{Name: command, Err: exec.ErrNotFound}
}

func TestPathResolverResolvePrefersConfiguredPath(t *testing.T) {
	binPath := filepath.Join(t.TempDir(), "ffmpeg-custom")
	if err := os.WriteFile(binPath, []byte("ffmpeg"), 0o755); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		return "", notFoundErr(file)
	}

	state := resolver.Resolve(DependencySpec{
		Name:           "ffmpeg",
		Command:        "ffmpeg",
		ConfiguredPath: binPath,
	})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.Source != DependencySourceConfig {
		t.Fatalf("state.Source = %q, want %q", state.Source, DependencySourceConfig)
	}
	if state.ResolvedPath != binPath {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, binPath)
	}
}

func TestPathResolverResolveFallsBackToLookPath(t *testing.T) {
	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		if file != "ffprobe" {
			t.Fatalf("LookPath() received %q, want %q", file, "ffprobe")
		}
		return "/mock/bin/ffprobe", nil
	}

	state := resolver.Resolve(DependencySpec{Name: "ffprobe", Command: "ffprobe"})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.Source != DependencySourceLookPath {
		t.Fatalf("state.Source = %q, want %q", state.Source, DependencySourceLookPath)
	}
	if state.ResolvedPath != "/mock/bin/ffprobe" {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, "/mock/bin/ffprobe")
	}
}

func TestPathResolverResolveReportsMissingWhenNotFound(t *testing.T) {
	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		return "", notFoundErr(file)
	}

	state := resolver.Resolve(DependencySpec{Name: "ffmpeg", Command: "ffmpeg"})

	if state.Status != DependencyStatusMissing {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusMissing)
	}
	if state.ResolvedPath != "" {
		t.Fatalf("state.ResolvedPath = %q, want empty", state.ResolvedPath)
	}
	if state.Error == "" {
		t.Fatalf("state.Error should not be empty")
	}
}

func TestPathResolverResolveConfiguredStatFailureReturnsError(t *testing.T) {
	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		return "", notFoundErr(file)
	}
	resolver.AbsPath = func(path string) (string, error) {
		return "/mock/configured/path", nil
	}
	resolver.Stat = func(name string) (os.FileInfo, error) {
		return nil, errors.New("permission denied")
	}

	state := resolver.Resolve(DependencySpec{
		Name:           "ffmpeg",
		Command:        "ffmpeg",
		ConfiguredPath: "ignored",
	})

	if state.Status != DependencyStatusError {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusError)
	}
	if !strings.Contains(state.Error, "permission denied") {
		t.Fatalf("state.Error = %q, want to contain %q", state.Error, "permission denied")
	}
}

func TestBuildDependencyInventoryListsRenderToolchain(t *testing.T) {
	specs := BuildDependencyInventory()
	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d, want 2", len(specs))
	}
	for _, spec := range specs {
		if spec.Tier != DependencyTierMust {
			t.Fatalf("spec %q Tier = %q, want %q", spec.ID, spec.Tier, DependencyTierMust)
		}
	}
}

func TestFormatDependencyReportIncludesHints(t *testing.T) {
	report := FormatDependencyReport([]DependencyState{
		{
			DependencySpec: DependencySpec{Name: "ffmpeg", Tier: DependencyTierMust, Hint: "install ffmpeg"},
			Status:         DependencyStatusMissing,
			Source:         DependencySourceLookPath,
			Error:          "executable file not found",
		},
	})

	for _, want := range []string{"ffmpeg", "MUST", "missing", "install ffmpeg", "executable file not found"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report %q missing %q", report, want)
		}
	}
}

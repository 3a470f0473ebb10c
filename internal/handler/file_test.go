package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shortfactory/internal/appdirs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configurePathResolverForTest(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalResolver := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			OutputDir: filepath.Join(tempDir, "output"),
			CacheDir:  filepath.Join(tempDir, "cache"),
		}, nil
	}
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})
	return tempDir
}

func buildFileRouter() *gin.Engine {
	router := gin.New()
	h := &Handler{}
	router.GET("/api/file/*filepath", h.DownloadFile)
	router.HEAD("/api/file/*filepath", h.DownloadFile)
	return router
}

func TestDownloadFile_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	configurePathResolverForTest(t)

	router := buildFileRouter()

	req, _ := http.NewRequest("HEAD", "/api/file/tasks/nonexistent/render.mp4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code, "Should return 404 for non-existent file")
}

func TestDownloadFile_Exists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tempDir := configurePathResolverForTest(t)

	taskDir := filepath.Join(tempDir, "output", "tasks", "test_task_exists")
	err := os.MkdirAll(taskDir, 0o755)
	require.NoError(t, err)

	testFile := filepath.Join(taskDir, "youtube_shorts.mp4")
	err = os.WriteFile(testFile, []byte("not really a video"), 0o644)
	require.NoError(t, err)

	router := buildFileRouter()

	req, _ := http.NewRequest("HEAD", "/api/file/tasks/test_task_exists/youtube_shorts.mp4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Should return 200 for existing file")
}

func TestDownloadFile_GET_ReturnsFileContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tempDir := configurePathResolverForTest(t)

	taskDir := filepath.Join(tempDir, "output", "tasks", "test_download_task")
	err := os.MkdirAll(taskDir, 0o755)
	require.NoError(t, err)

	testContent := "rendered output bytes"
	testFile := filepath.Join(taskDir, "tiktok.mp4")
	err = os.WriteFile(testFile, []byte(testContent), 0o644)
	require.NoError(t, err)

	router := buildFileRouter()

	req, _ := http.NewRequest("GET", "/api/file/tasks/test_download_task/tiktok.mp4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "GET should return 200 for existing file")
	assert.Equal(t, testContent, w.Body.String(), "GET should return file content")
}

func TestDownloadFile_PathTraversalBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	configurePathResolverForTest(t)

	router := buildFileRouter()
	req, _ := http.NewRequest("GET", "/api/file/tasks/../../etc/passwd", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "Traversal path should be blocked")
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadFile_SavesIntoUploadRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tempDir := configurePathResolverForTest(t)

	router := gin.New()
	h := &Handler{}
	router.POST("/api/file", h.UploadFile)

	body, contentType := multipartBody(t, "file", "clip.mp4", "fake clip data")
	req, _ := http.NewRequest("POST", "/api/file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Error int `json:"error"`
		Data  struct {
			FilePath []string `json:"file_path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Error)
	require.Len(t, resp.Data.FilePath, 1)

	saved := filepath.Join(tempDir, "output", "uploads", "clip.mp4")
	content, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "fake clip data", string(content))
}

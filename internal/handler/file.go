package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"shortfactory/internal/response"
	"shortfactory/pkg/util"
)

func (h *Handler) UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "Failed to read upload",
			Data:  nil,
		})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "No file uploaded",
			Data:  nil,
		})
		return
	}

	uploadRoot := preferredUploadRoot()
	var savedFiles []string
	for _, file := range files {
		savePath := filepath.Join(uploadRoot, util.SanitizePathName(filepath.Base(file.Filename)))
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			response.R(c, response.Response{
				Error: -1,
				Msg:   "Failed to save file: " + file.Filename,
				Data:  nil,
			})
			return
		}
		savedFiles = append(savedFiles, "local:"+savePath)
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "Upload complete",
		Data:  gin.H{"file_path": savedFiles},
	})
}

func (h *Handler) DownloadFile(c *gin.Context) {
	requestedFile := c.Param("filepath")
	if requestedFile == "" {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "File path is required",
			Data:  nil,
		})
		return
	}

	if hasParentTraversal(requestedFile) {
		c.JSON(http.StatusForbidden, response.Response{
			Error: -1,
			Msg:   "Invalid file path",
			Data:  nil,
		})
		return
	}

	localFilePath, ok := resolveDownloadPath(requestedFile)
	if !ok {
		c.JSON(http.StatusNotFound, response.Response{
			Error: -1,
			Msg:   "File not found",
			Data:  nil,
		})
		return
	}
	if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, response.Response{
			Error: -1,
			Msg:   "File not found",
			Data:  nil,
		})
		return
	}
	c.FileAttachment(localFilePath, filepath.Base(localFilePath))
}

package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// orderID parses the :id path parameter, writing 400 on garbage.
func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// readUpload drains an uploaded multipart file into memory.
func readUpload(file *multipart.FileHeader) (string, []byte, error) {
	src, err := file.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", nil, err
	}
	return file.Filename, data, nil
}

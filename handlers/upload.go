package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"trackly-server/config"
	"trackly-server/service"
)

// UploadImage stores one multipart image in the bucket and returns the public
// URL to embed in an entry's images array.
func UploadImage(c *gin.Context) {
	userID := service.CurrentUserID(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": 1, "status_msg": "image missing"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": 1, "status_msg": "not an image"})
		return
	}

	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("entries/%d/%s%s", userID, uuid.NewString(), ext)

	_, err = config.MinioClient.PutObject(config.Ctx, config.Cfg.Minio.Bucket, objectName, file, header.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status_code": 1, "status_msg": "image store failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": 0,
		"url":         config.PublicObjectURL(objectName),
	})
}

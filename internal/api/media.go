package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadProductMedia handles POST /api/products/:id/media. The form carries
// an "image" or a "video" file; the stored URL is recorded as product media.
func (h *Handler) UploadProductMedia(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	productID, ok := idParam(c)
	if !ok {
		return
	}
	if _, ok := h.checkProductOwnership(c, ctx, productID); !ok {
		return
	}

	field := "image"
	fileHeader, err := c.FormFile(field)
	if err != nil {
		field = "video"
		fileHeader, err = c.FormFile(field)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'image' or 'video' form field"})
		return
	}
	if fileHeader.Size > 50*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 50MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	if field == "image" {
		buffer := make([]byte, 512)
		if _, err := file.Read(buffer); err != nil && err != io.EOF {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file content"})
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file content"})
			return
		}
		if !allowedImageTypes[http.DetectContentType(buffer)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type for image upload"})
			return
		}
	}

	objectKey := fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	url, err := h.uploadToS3(ctx, objectKey, file)
	if err != nil {
		log.Printf("S3 upload failed, falling back to local storage: %v", err)
		url, err = uploadToLocal(objectKey, file)
		if err != nil {
			log.Printf("Local upload also failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
	}

	var imageURL, videoURL *string
	if field == "image" {
		imageURL = &url
	} else {
		videoURL = &url
	}

	media, err := h.db.AddProductMedia(ctx, productID, imageURL, videoURL)
	if err != nil {
		log.Printf("Failed to save media URL to DB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File uploaded but failed to update product record"})
		return
	}
	c.JSON(http.StatusCreated, media)
}

// DeleteProductMedia handles DELETE /api/products/:id/media/:media_id
func (h *Handler) DeleteProductMedia(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	productID, ok := idParam(c)
	if !ok {
		return
	}
	mediaID, err := idFromParam(c, "media_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media_id format"})
		return
	}
	if _, ok := h.checkProductOwnership(c, ctx, productID); !ok {
		return
	}

	if err := h.db.DeleteProductMedia(ctx, productID, mediaID); err != nil {
		respondDBError(c, err, "Failed to delete media")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Media deleted"})
}

// uploadToS3 stores the file under the given key and returns a public URL.
// Requires S3_BUCKET to be configured; credentials come from the default chain.
func (h *Handler) uploadToS3(ctx context.Context, objectKey string, file multipart.File) (string, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("S3_BUCKET not configured")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "eu-central-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS default config: %w", err)
	}
	s3Client := s3.NewFromConfig(cfg)

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}
	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &objectKey,
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	cdnBase := os.Getenv("ASSETS_CDN_BASE_URL")
	if cdnBase == "" {
		cdnBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(cdnBase, "/"), objectKey), nil
}

// uploadToLocal stores the file on disk for development
func uploadToLocal(objectKey string, file multipart.File) (string, error) {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	destPath := filepath.Join(uploadDir, objectKey)
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create local file: %w", err)
	}
	defer dest.Close()

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}
	if _, err := io.Copy(dest, file); err != nil {
		return "", fmt.Errorf("failed to write local file: %w", err)
	}
	return "/uploads/" + objectKey, nil
}

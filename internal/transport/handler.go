package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bagcheck/authenticity-api/internal/config"
	apperrors "github.com/bagcheck/authenticity-api/internal/errors"
	"github.com/bagcheck/authenticity-api/internal/logger"
	"github.com/bagcheck/authenticity-api/internal/service"
	"github.com/bagcheck/authenticity-api/pkg/models"
	"github.com/bagcheck/authenticity-api/pkg/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	imagesField         = "images"
	labelsField         = "labels"
	declaredSerialField = "declaredSerial"
)

// MetricsProvider exposes in-process counters for GET /metrics
type MetricsProvider interface {
	GetMetrics() map[string]interface{}
}

func NewHandler(svc service.VerificationService, metrics MetricsProvider, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestID(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/", liveness)
	r.GET("/health", healthCheck)
	r.GET("/metrics", metricsHandler(metrics))
	r.POST("/verify", verify(svc, validation.NewUploadValidatorWithLimits(cfg.MaxFiles, cfg.MaxFileSize), cfg))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.NewNotFoundError("route not found", nil))
	})

	return r
}

func verify(svc service.VerificationService, uploads *validation.UploadValidator, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		reqID := c.GetString(requestIDKey)
		log := logger.WithRequestID(reqID)

		// Log request start
		log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing verification request")

		req, err := readVerifyRequest(c, uploads)
		if err != nil {
			respondVerdictError(c, err)
			return
		}
		req.RequestID = reqID

		result, err := svc.Verify(ctx, req)
		status := http.StatusOK
		if err != nil {
			status = apperrors.GetStatusCode(err)
		}

		// Log completion
		log.WithFields(logrus.Fields{
			"image_count":        len(req.Images),
			"verdict":            result.Verdict,
			"confidence":         result.Confidence,
			"red_flags":          len(result.RedFlags),
			"missing_photos":     len(result.MissingPhotos),
			"status_code":        status,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Verification request finished")

		c.JSON(status, result)
	}
}

// readVerifyRequest parses the multipart upload. A request that is not
// multipart carries zero images.
func readVerifyRequest(c *gin.Context, uploads *validation.UploadValidator) (models.VerifyRequest, error) {
	var req models.VerifyRequest

	form, err := c.MultipartForm()
	if err != nil {
		switch {
		case isBodyTooLarge(err):
			return req, apperrors.NewPayloadTooLargeError("Request body too large", err)
		case errors.Is(err, http.ErrNotMultipart):
			return req, nil
		default:
			return req, apperrors.NewValidationError("Invalid multipart upload", err)
		}
	}

	files := form.File[imagesField]
	if err := uploads.ValidateFileCount(len(files)); err != nil {
		return req, err
	}

	labels, err := validation.ParseLabels(firstValue(form.Value[labelsField]))
	if err != nil {
		return req, err
	}
	req.Labels = labels
	req.DeclaredSerial = strings.TrimSpace(firstValue(form.Value[declaredSerialField]))

	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if err := uploads.ValidateFile(fh.Filename, fh.Size, contentType); err != nil {
			return req, err
		}

		content, err := readFile(fh)
		if err != nil {
			return req, apperrors.NewValidationError(fmt.Sprintf("Unable to read image %s", fh.Filename), err)
		}

		req.Images = append(req.Images, models.UploadedImage{
			Filename: fh.Filename,
			Size:     fh.Size,
			MIMEType: contentType,
			Content:  content,
		})
	}

	return req, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func liveness(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "available",
		Version: "1.0.0",
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

func metricsHandler(m MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, m.GetMetrics())
	}
}

// Middleware and helper functions
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func corsConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cc.AllowHeaders = append(cc.AllowHeaders, requestIDHeader)
	cc.ExposeHeaders = []string{requestIDHeader}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
		"request_id":  c.GetString(requestIDKey),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}

// respondVerdictError answers a rejected upload with a zero-confidence verdict.
// Validation problems keep a 200 status; media type and size rejections use theirs.
func respondVerdictError(c *gin.Context, err error) {
	status := http.StatusOK
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		status = apperrors.GetStatusCode(err)
	}

	message := "Invalid upload"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	logger.WithRequestID(c.GetString(requestIDKey)).WithError(err).WithFields(logrus.Fields{
		"status_code": status,
		"ip":          c.ClientIP(),
	}).Warn("Upload rejected")

	c.AbortWithStatusJSON(status, models.NewInconclusiveResult(message))
}

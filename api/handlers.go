package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/mrbreo/paradedb/config"
	"github.com/mrbreo/paradedb/internal/settings"
)

// TokenizerRequest is the body of POST /tokenizer.
// Omitted or null attributes are left out of the document.
type TokenizerRequest struct {
	Name *string `json:"name"`
	config.TokenizerOptions
}

// FieldRequest is the body of POST /field. Tokenizer, when present, is a
// document as returned by POST /tokenizer and is embedded unchanged.
type FieldRequest struct {
	Name *string `json:"name"`
	config.FieldOptions
}

// Attributes accepted in request bodies, keyed by JSON name.
var (
	tokenizerAttributes = acceptedAttributes(config.TokenizerKeys, config.KeyType)
	fieldAttributes     = acceptedAttributes(config.FieldKeys)
)

// acceptedAttributes returns "name" plus every builder key except those
// the builder writes itself.
func acceptedAttributes(keys []string, builderOwned ...string) map[string]bool {
	accepted := map[string]bool{"name": true}
	for _, key := range keys {
		accepted[key] = true
	}
	for _, key := range builderOwned {
		delete(accepted, key)
	}
	return accepted
}

// API holds dependencies for API handlers.
type API struct {
	logger logrus.FieldLogger
}

// NewAPI creates a new API handler structure.
func NewAPI(logger logrus.FieldLogger) *API {
	return &API{logger: logger}
}

// NewRouter builds a gin engine with the standard middleware stack and
// all routes registered.
func NewRouter(s *settings.Settings, logger logrus.FieldLogger) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		SendInternalError(c, c.Request.Method+" "+c.Request.URL.Path, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	}))
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware(logger))
	router.Use(RequestSizeLimitMiddleware(s.MaxRequestBytes))
	if s.EnableCORS {
		router.Use(CORSMiddleware())
	}

	SetupRoutes(router, logger)
	return router
}

// SetupRoutes defines all the API routes.
func SetupRoutes(router *gin.Engine, logger logrus.FieldLogger) {
	apiHandler := NewAPI(logger)

	router.GET("/health", apiHandler.HealthCheckHandler)

	router.POST("/tokenizer", apiHandler.TokenizerHandler) // Build a tokenizer document
	router.POST("/field", apiHandler.FieldHandler)         // Build a field document

	router.NoRoute(SendRouteNotFoundError)
}

// TokenizerHandler builds a tokenizer document.
// Request Body: TokenizerRequest
func (api *API) TokenizerHandler(c *gin.Context) {
	var req TokenizerRequest
	if !api.bind(c, "tokenizer", tokenizerAttributes, &req) {
		return
	}

	if result := ValidateName("name", req.Name); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	doc := config.Tokenizer(*req.Name, req.TokenizerOptions)
	api.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"tokenizer":  *req.Name,
		"keys":       doc.Keys(),
	}).Debug("Built tokenizer document")

	c.JSON(http.StatusOK, doc)
}

// FieldHandler builds a field document.
// Request Body: FieldRequest
func (api *API) FieldHandler(c *gin.Context) {
	var req FieldRequest
	if !api.bind(c, "field", fieldAttributes, &req) {
		return
	}

	if result := ValidateName("name", req.Name); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	doc := config.Field(*req.Name, req.FieldOptions)
	api.logger.WithFields(logrus.Fields{
		"request_id":    c.GetString(requestIDKey),
		"field":         *req.Name,
		"has_tokenizer": req.Tokenizer.IsSome(),
	}).Debug("Built field document")

	c.JSON(http.StatusOK, doc)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "fieldconfig",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// bind decodes the request body through gin and writes the error response
// itself when binding fails.
func (api *API) bind(c *gin.Context, builder string, accepted map[string]bool, target interface{}) bool {
	err := c.ShouldBindBodyWith(target, binding.JSON)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		SendError(c, http.StatusRequestEntityTooLarge, ErrorCodeInvalidJSON,
			fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
		return false
	}

	var body []byte
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		body, _ = cached.([]byte)
	}

	if result := ValidateDecodeError(builder, accepted, body, err); result != nil {
		SendStructuredValidationError(c, result)
		return false
	}

	SendInvalidJSONError(c, err)
	return false
}

package api

import (
	"errors"
	"net/http"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/service"
	"github.com/blog-content-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// emptyMessage accompanies successful responses with nothing in them
const emptyMessage = "nothing here yet"

// pageResponse is a post page plus the empty-state message
type pageResponse struct {
	models.PostPage
	Message string `json:"message,omitempty"`
}

func newPageResponse(page models.PostPage) pageResponse {
	if page.Posts == nil {
		page.Posts = []models.Post{}
	}
	resp := pageResponse{PostPage: page}
	if len(page.Posts) == 0 {
		resp.Message = emptyMessage
	}
	return resp
}

func badRequest(c *gin.Context, errs []validation.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request",
		"details": errs,
	})
}

// writeError maps service errors to HTTP responses
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	var fe *service.FetchError
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &fe):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     fe.Error(),
			"retryable": true,
		})
	case errors.Is(err, service.ErrInvalidTheme), errors.Is(err, service.ErrUnknownPreference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

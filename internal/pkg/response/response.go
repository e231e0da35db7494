package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps an application error to its HTTP status code and writes the
// error body. Typed errors produce {"error": msg}; anything unrecognized is
// reported as an internal failure with {"error", "details"}.
//
// AccessDenied deliberately maps to 500 rather than 403: clients of the
// booking read endpoint have depended on that status since the first release.
func Error(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindBadRequest, apperrors.KindCommentNotAllowed:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.KindAccessDenied:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": err.Error(),
		})
	}
}

// Package services holds helpers shared by the HTTP handler packages.
package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	"github.com/JonasLeetTheWay/clashon-go/internal/logging"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
)

// Result limits for list endpoints.
const (
	PublicListLimit = 100
	AdminListLimit  = 1000
)

// BindJSON decodes the body into dst and writes a 400 on failure.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apperror.Respond(c, apperror.Binding(err))
		return false
	}
	return true
}

// Fail maps a store error onto the response. ErrNotFound becomes a 404
// with notFound as the message; anything else is logged and becomes a 500.
func Fail(c *gin.Context, err error, notFound string) {
	if errors.Is(err, repository.ErrNotFound) {
		apperror.Respond(c, apperror.NotFound(notFound))
		return
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("store operation failed")
	}
	apperror.Respond(c, err)
}

// QueryBool parses an optional boolean query parameter. A missing or
// empty value yields nil.
func QueryBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.Validation("Invalid value for " + key + ": " + raw)
	}
	return &v, nil
}

// QueryOrBody reads key from the query string and falls back to a string
// field of the same name in a JSON body.
func QueryOrBody(c *gin.Context, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}
	var body map[string]interface{}
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return ""
	}
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}

// Deleted writes the body returned by every delete endpoint.
func Deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// UpdateUser applies a user patch. It rejects empty patches and phone
// numbers that belong to another user.
func UpdateUser(ctx context.Context, users repository.UserRepository, id string, patch models.UserUpdate) (*models.User, error) {
	if patch.IsEmpty() {
		return nil, apperror.Validation("No fields to update")
	}
	if patch.Phone != nil {
		taken, err := users.PhoneTaken(ctx, *patch.Phone, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Conflict("Phone number already in use")
		}
	}
	return users.Update(ctx, id, patch)
}

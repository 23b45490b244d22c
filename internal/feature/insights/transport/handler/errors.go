package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	"codex_backend/internal/feature/insights/usecase"
)

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInsightNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "insight not found", Code: api.CodeInsightNotFound})
	case errors.Is(err, usecase.ErrNoFieldsToUpdate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no fields to update", Code: api.CodeNoFieldsToUpdate})
	case errors.Is(err, usecase.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: api.CodeInvalidDate})
	case errors.Is(err, usecase.ErrEmptySelection):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: api.CodeInvalidRequest})
	default:
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Internal())
	}
}

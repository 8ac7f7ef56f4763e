package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/repository"
)

type updateMessagePayload struct {
	ID      string                 `json:"id"`
	Updates map[string]interface{} `json:"updates"`
}

func (s *WebServer) listMessages(c echo.Context) error {
	return ok(c, s.app.Messages().ListAll(c.Request().Context()))
}

func (s *WebServer) createMessage(c echo.Context) error {
	var input repository.MessageInput
	if err := c.Bind(&input); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	msg, err := s.app.Messages().Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrValidationFailed) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		zap.S().Errorf("message create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to save message")
	}
	return ok(c, msg)
}

func (s *WebServer) updateMessage(c echo.Context) error {
	var payload updateMessagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.ID == "" {
		return fail(c, http.StatusBadRequest, "Message id is required")
	}

	msg, err := s.app.Messages().SetField(c.Request().Context(), payload.ID, payload.Updates)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Message not found")
		}
		zap.S().Errorf("message update failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to update message")
	}
	return ok(c, msg)
}

func (s *WebServer) deleteMessage(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "Message id is required")
	}

	if err := s.app.Messages().Delete(c.Request().Context(), id); err != nil {
		zap.S().Errorf("message delete failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to delete message")
	}
	return ok(c, echo.Map{"id": id})
}

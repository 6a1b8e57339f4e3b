// Package response отправляет клиенту успешные ответы и списки бизнес-ошибок.
package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/pkg/logger"
)

const (
	msgInternalError = "Internal server error"
	msgRouteNotFound = "Route not found"
)

// ErrorItem - одна ошибка в ответе.
type ErrorItem struct {
	ErrorCode string `json:"errorCode"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// ErrorBody - тело ответа с ошибками.
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// localsErrorCodes - ключ Locals с кодами отказа текущего запроса.
const localsErrorCodes = "errorCodes"

// ErrorCodes возвращает коды бизнес-ошибок, отправленных в ответе на запрос.
func ErrorCodes(c fiber.Ctx) []string {
	codes, _ := c.Locals(localsErrorCodes).([]string)
	return codes
}

// Empty отправляет пустой JSON-объект.
func Empty(c fiber.Ctx) error {
	return JSON(c, fiber.Map{})
}

// JSON отправляет v со статусом 200.
func JSON(c fiber.Ctx, v any) error {
	if err := c.Status(fiber.StatusOK).JSON(v); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error переводит err в ответ. Бизнес-ошибки отдаются с HTTP 400, прочие с HTTP 500.
func Error(ctx context.Context, c fiber.Ctx, err error) error {
	if list, ok := apperr.Collect(err); ok {
		body := ErrorBody{Errors: make([]ErrorItem, 0, len(list))}
		codes := make([]string, 0, len(list))
		for _, e := range list {
			body.Errors = append(body.Errors, ErrorItem{ErrorCode: string(e.Code), Field: e.Field, Message: e.Message})
			codes = append(codes, string(e.Code))
		}
		c.Locals(localsErrorCodes, codes)
		logger.Log(ctx).Debug(ctx, "request rejected", zap.String("error", list.Error()))
		return send(c, fiber.StatusBadRequest, body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		msg := fiberErr.Message
		if fiberErr.Code == fiber.StatusNotFound {
			msg = msgRouteNotFound
		}
		return send(c, fiberErr.Code, fiber.Map{"error": msg})
	}

	logger.Log(ctx).Error(ctx, "request failed", zap.Error(err))
	return send(c, fiber.StatusInternalServerError, fiber.Map{"error": msgInternalError})
}

func send(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

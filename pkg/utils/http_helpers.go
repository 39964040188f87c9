package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "rating-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Filter — разобранные параметры списочных запросов.
type Filter struct {
	Limit  int
	Page   int
	Offset int
	Search string
	// Точечные фильтры вида filter[field]=value; белые списки проверяются в репозиториях.
	Filter map[string]string
}

func ParseFilterFromQuery(values url.Values) Filter {
	filterReq := Filter{
		Filter: make(map[string]string),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = vals[0]
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	if len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := int(total[0]) / filter.Limit
		if int(total[0])%filter.Limit > 0 {
			totalPages++
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        filter.Page,
			"limit":       filter.Limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}

		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	for sentinel, statusCode := range apperrors.ErrorStatusMap {
		if errors.Is(err, sentinel) {
			return c.JSON(statusCode, map[string]interface{}{
				"status":  false,
				"message": sentinel.Error(),
			})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}

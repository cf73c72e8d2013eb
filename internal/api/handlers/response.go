package handlers

import (
	"context"
	"errors"
	"net/http"

	"recipe-forge/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteError 將錯誤轉成 ErrorResponse
//
// debug 為 true 時才輸出底層錯誤於 details。
func WriteError(c *gin.Context, err error, debug bool) {
	status, resp := mapError(err)
	if debug && status >= http.StatusInternalServerError {
		resp.Details = err.Error()
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogDebug("請求被拒絕", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// BadRequest 以驗證錯誤回應 400
func BadRequest(c *gin.Context, message string) {
	WriteError(c, common.NewValidationError(message), false)
}

func mapError(err error) (int, common.ErrorResponse) {
	if common.IsValidationError(err) {
		return http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		}
	}

	if ce, ok := common.AsCustomError(err); ok {
		return ce.Status, common.ErrorResponse{Code: ce.Code, Message: ce.Message}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, common.ErrorResponse{
			Code:    common.ErrGatewayTimeout.Code,
			Message: common.ErrGatewayTimeout.Message,
		}
	}

	return http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrInternalError.Code,
		Message: common.ErrInternalError.Message,
	}
}

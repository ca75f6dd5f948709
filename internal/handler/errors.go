package handler

import (
	"errors"

	"mentorship-system/internal/service"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// renderError 业务错误映射为HTTP状态码，未知错误记录日志并返回500
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInactiveAccount),
		errors.Is(err, service.ErrResumeAccessDenied),
		errors.Is(err, service.ErrResumeUpdateDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrActiveRequestExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrReceiverNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrMentorNotFound),
		errors.Is(err, service.ErrResumeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrSameRole),
		errors.Is(err, service.ErrEmptyName):
		response.BadRequest(c, err.Error())
	default:
		logger.ForRequest(c).Error("请求处理失败",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		response.InternalError(c, "Internal server error")
	}
}

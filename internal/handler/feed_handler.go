package handler

import (
	"mentorship-system/internal/service"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	service *service.FeedService
}

func NewFeedHandler(s *service.FeedService) *FeedHandler {
	return &FeedHandler{service: s}
}

type feedQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1,max=100000"`
	Size   int    `form:"size" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" binding:"max=200"`
}

// List 推荐流分页
func (h *FeedHandler) List(kind service.FeedKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q feedQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			response.ValidationErrorAt(c, err, "query")
			return
		}
		page, err := h.service.Page(c.Request.Context(), kind, q.Page, q.Size, q.Search)
		if err != nil {
			renderError(c, err)
			return
		}
		response.Success(c, page)
	}
}

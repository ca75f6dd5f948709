package handler

import (
	"mentorship-system/internal/service"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// ResumeHandler 导师履历，路由需限定导师角色
type ResumeHandler struct {
	service *service.ResumeService
}

func NewResumeHandler(s *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{service: s}
}

type createResumeRequest struct {
	University  string `json:"university" binding:"required,max=100"`
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=5000"`
}

type updateResumeRequest struct {
	University  *string `json:"university" binding:"omitempty,max=100"`
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var r createResumeRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.ValidationError(c, err)
		return
	}
	info, err := h.service.Create(jwt.GetAccountID(c), service.ResumeInput{
		University:  r.University,
		Title:       r.Title,
		Description: r.Description,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, info)
}

func (h *ResumeHandler) List(c *gin.Context) {
	list, err := h.service.List(jwt.GetAccountID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.service.Get(jwt.GetAccountID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, info)
}

// Update 局部更新
func (h *ResumeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var r updateResumeRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.ValidationError(c, err)
		return
	}
	info, err := h.service.Update(jwt.GetAccountID(c), id, service.ResumeUpdate{
		University:  r.University,
		Title:       r.Title,
		Description: r.Description,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, info)
}

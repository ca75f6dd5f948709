package handler

import (
	"net/http"
	"strconv"

	"mentorship-system/internal/model"
	"mentorship-system/internal/service"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service *service.RequestService
}

func NewRequestHandler(s *service.RequestService) *RequestHandler {
	return &RequestHandler{service: s}
}

type sendRequest struct {
	ReceiverID   uint       `json:"receiver_id" binding:"required"`
	Message      string     `json:"message" binding:"required,max=2000"`
	ReceiverType model.Role `json:"receiver_type" binding:"omitempty,oneof=user mentor"`
}

// Send 发送申请
func (h *RequestHandler) Send(c *gin.Context) {
	var r sendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.ValidationError(c, err)
		return
	}
	info, err := h.service.Send(currentAccount(c), r.ReceiverID, r.ReceiverType, r.Message)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, info)
}

// Sent 我发出的申请
func (h *RequestHandler) Sent(c *gin.Context) {
	list, err := h.service.ListSent(currentAccount(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// Got 我收到的申请
func (h *RequestHandler) Got(c *gin.Context) {
	list, err := h.service.ListReceived(currentAccount(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// Approve 同意申请
func (h *RequestHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.service.Approve(currentAccount(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, info)
}

// Reject 拒绝申请（发送者调用即撤回）
func (h *RequestHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.service.Reject(currentAccount(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, info)
}

func currentAccount(c *gin.Context) service.Account {
	return service.Account{ID: jwt.GetAccountID(c), Role: jwt.GetRole(c)}
}

// pathID 解析路径中的ID，非法时直接写入422
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response.ErrorBody{Detail: []response.FieldError{{
			Loc:  []string{"path", "id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}}})
		return 0, false
	}
	return uint(id), true
}

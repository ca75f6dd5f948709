package repository

import (
	"time"

	"mentorship-system/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestRepository 导师申请数据仓储
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建RequestRepository实例
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateIfNoActive 在同一事务内检查并创建申请
// 若同一发送者对同一接收者已有进行中的申请，返回 created=false
func (r *RequestRepository) CreateIfNoActive(req *model.Request) (created bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		// 锁住发送者所在行，同一发送者的并发发送依次执行（sqlite 忽略行锁，本身只有单连接）
		var sender interface{} = &model.User{}
		if req.SenderType == model.RoleMentor {
			sender = &model.Mentor{}
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", req.SenderID).
			Limit(1).
			Find(sender).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Request{}).
			Where("sender_id = ? AND sender_type = ? AND receiver_id = ? AND receiver_type = ?",
				req.SenderID, req.SenderType, req.ReceiverID, req.ReceiverType).
			Where("status IN ?", model.ActiveRequestStatuses).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// GetByID 根据ID获取申请
func (r *RequestRepository) GetByID(id uint) (*model.Request, error) {
	var req model.Request
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// ListBySender 发送者的全部申请，按创建顺序
func (r *RequestRepository) ListBySender(senderID uint, senderType model.Role) ([]*model.Request, error) {
	var requests []*model.Request
	err := r.db.Where("sender_id = ? AND sender_type = ?", senderID, senderType).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// ListByReceiver 接收者的全部申请，按创建顺序
func (r *RequestRepository) ListByReceiver(receiverID uint, receiverType model.Role) ([]*model.Request, error) {
	var requests []*model.Request
	err := r.db.Where("receiver_id = ? AND receiver_type = ?", receiverID, receiverType).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// TransitionFromPending 条件更新：仅当申请仍为pending时修改状态
// 并发的两次处理只有一次会影响到行，返回值表示本次是否生效
func (r *RequestRepository) TransitionFromPending(id uint, to model.RequestStatus) (bool, error) {
	result := r.db.Model(&model.Request{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// CountByStatus 按状态统计申请数量（监控指标使用）
func (r *RequestRepository) CountByStatus() (map[model.RequestStatus]int64, error) {
	type row struct {
		Status model.RequestStatus
		Count  int64
	}
	var rows []row
	if err := r.db.Model(&model.Request{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := map[model.RequestStatus]int64{
		model.RequestStatusPending:  0,
		model.RequestStatusAccepted: 0,
		model.RequestStatusRejected: 0,
	}
	for _, r := range rows {
		result[r.Status] = r.Count
	}
	return result, nil
}

package repository

import (
	"mentorship-system/internal/model"

	"gorm.io/gorm"
)

// UserRepository 学生数据仓储
type UserRepository struct {
	orm *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{orm: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.orm.Create(user).Error
}

func (r *UserRepository) Update(user *model.User) error {
	return r.orm.Save(user).Error
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.orm.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.orm.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// GetByIDs 批量查询，返回以ID为键的映射
func (r *UserRepository) GetByIDs(ids []uint) (map[uint]*model.User, error) {
	result := make(map[uint]*model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*model.User
	if err := r.orm.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// List 分页查询启用的学生，按ID排序；Search 匹配姓名/简介/目标院校
func (r *UserRepository) List(p Page) ([]*model.User, int64, error) {
	query := r.orm.Model(&model.User{}).Where("is_active = ?", true)
	if p.Search != "" {
		pattern := likePattern(p.Search)
		query = query.Where(
			likeClause("name")+" OR "+likeClause("description")+" OR "+likeClause("target_universities"),
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	err := query.Order("id ASC").Limit(p.Size).Offset(p.Offset()).Find(&users).Error
	return users, total, err
}

// Count 学生总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.orm.Model(&model.User{}).Count(&count).Error
	return count, err
}

package repository

import (
	"mentorship-system/internal/model"

	"gorm.io/gorm"
)

// MentorRepository 导师数据仓储
type MentorRepository struct {
	orm *gorm.DB
}

// NewMentorRepository 创建MentorRepository实例
func NewMentorRepository(db *gorm.DB) *MentorRepository {
	return &MentorRepository{orm: db}
}

func (r *MentorRepository) Create(mentor *model.Mentor) error {
	return r.orm.Create(mentor).Error
}

func (r *MentorRepository) Update(mentor *model.Mentor) error {
	return r.orm.Save(mentor).Error
}

func (r *MentorRepository) GetByID(id uint) (*model.Mentor, error) {
	var m model.Mentor
	if err := r.orm.First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MentorRepository) GetByEmail(email string) (*model.Mentor, error) {
	var m model.Mentor
	if err := r.orm.Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// GetByIDs 批量查询，返回以ID为键的映射
func (r *MentorRepository) GetByIDs(ids []uint) (map[uint]*model.Mentor, error) {
	result := make(map[uint]*model.Mentor, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var mentors []*model.Mentor
	if err := r.orm.Where("id IN ?", ids).Find(&mentors).Error; err != nil {
		return nil, err
	}
	for _, m := range mentors {
		result[m.ID] = m
	}
	return result, nil
}

// List 分页查询启用的导师，按ID排序；Search 匹配姓名/头衔/简介/院校
func (r *MentorRepository) List(p Page) ([]*model.Mentor, int64, error) {
	query := r.orm.Model(&model.Mentor{}).Where("is_active = ?", true)
	if p.Search != "" {
		pattern := likePattern(p.Search)
		query = query.Where(
			likeClause("name")+" OR "+likeClause("title")+" OR "+likeClause("description")+" OR "+likeClause("university"),
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mentors []*model.Mentor
	err := query.Order("id ASC").Limit(p.Size).Offset(p.Offset()).Find(&mentors).Error
	return mentors, total, err
}

// Count 导师总数
func (r *MentorRepository) Count() (int64, error) {
	var count int64
	err := r.orm.Model(&model.Mentor{}).Count(&count).Error
	return count, err
}

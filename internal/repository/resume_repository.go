package repository

import (
	"mentorship-system/internal/model"

	"gorm.io/gorm"
)

// ResumeRepository 导师履历仓储
type ResumeRepository struct {
	orm *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{orm: db}
}

func (r *ResumeRepository) Create(resume *model.MentorResume) error {
	return r.orm.Create(resume).Error
}

func (r *ResumeRepository) Update(resume *model.MentorResume) error {
	return r.orm.Save(resume).Error
}

func (r *ResumeRepository) GetByID(id uint) (*model.MentorResume, error) {
	var resume model.MentorResume
	if err := r.orm.First(&resume, id).Error; err != nil {
		return nil, translate(err)
	}
	return &resume, nil
}

// ListByMentor 导师的全部履历，按创建顺序
func (r *ResumeRepository) ListByMentor(mentorID uint) ([]*model.MentorResume, error) {
	var resumes []*model.MentorResume
	err := r.orm.Where("mentor_id = ?", mentorID).Order("id ASC").Find(&resumes).Error
	return resumes, err
}

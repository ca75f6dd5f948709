package service

import (
	"strings"

	"mentorship-system/internal/model"
	"mentorship-system/internal/repository"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/response"

	"go.uber.org/zap"
)

// ResumeInput 新建履历参数
type ResumeInput struct {
	University  string
	Title       string
	Description string
}

// ResumeUpdate 履历局部更新，为nil的字段保持不变
type ResumeUpdate struct {
	University  *string
	Title       *string
	Description *string
}

// ResumeService 导师管理自己的履历
type ResumeService struct {
	resumes *repository.ResumeRepository
}

func NewResumeService(resumes *repository.ResumeRepository) *ResumeService {
	return &ResumeService{resumes: resumes}
}

// Create 为导师新建履历
func (s *ResumeService) Create(mentorID uint, in ResumeInput) (*response.ResumeInfo, error) {
	resume := &model.MentorResume{
		MentorID:    mentorID,
		University:  strings.TrimSpace(in.University),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
	}
	if err := s.resumes.Create(resume); err != nil {
		return nil, err
	}
	logger.Info("履历已创建", zap.Uint("mentor_id", mentorID), zap.Uint("resume_id", resume.ID))
	return response.FilterResumeInfo(resume), nil
}

// List 导师自己的全部履历
func (s *ResumeService) List(mentorID uint) ([]*response.ResumeInfo, error) {
	resumes, err := s.resumes.ListByMentor(mentorID)
	if err != nil {
		return nil, err
	}
	out := make([]*response.ResumeInfo, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, response.FilterResumeInfo(r))
	}
	return out, nil
}

// Get 查询一份履历，只有所属导师可见
func (s *ResumeService) Get(mentorID, id uint) (*response.ResumeInfo, error) {
	resume, err := s.owned(mentorID, id, ErrResumeAccessDenied)
	if err != nil {
		return nil, err
	}
	return response.FilterResumeInfo(resume), nil
}

// Update 局部更新履历，只有所属导师可改
func (s *ResumeService) Update(mentorID, id uint, in ResumeUpdate) (*response.ResumeInfo, error) {
	resume, err := s.owned(mentorID, id, ErrResumeUpdateDenied)
	if err != nil {
		return nil, err
	}
	if in.University != nil {
		resume.University = strings.TrimSpace(*in.University)
	}
	if in.Title != nil {
		resume.Title = strings.TrimSpace(*in.Title)
	}
	assign(&resume.Description, in.Description)
	if err := s.resumes.Update(resume); err != nil {
		return nil, err
	}
	return response.FilterResumeInfo(resume), nil
}

func (s *ResumeService) owned(mentorID, id uint, denied error) (*model.MentorResume, error) {
	resume, err := s.resumes.GetByID(id)
	if err != nil {
		return nil, notFoundAs(err, ErrResumeNotFound)
	}
	if resume.MentorID != mentorID {
		return nil, denied
	}
	return resume, nil
}

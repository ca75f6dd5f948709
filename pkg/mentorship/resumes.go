package mentorship

import (
	"context"
	"net/http"
	"strconv"
)

const resumesPath = "/mentors/resumes"

func resumePath(id uint) string {
	return resumesPath + "/" + strconv.FormatUint(uint64(id), 10)
}

// CreateResume 新建履历，仅导师可用
func (c *Client) CreateResume(ctx context.Context, in ResumeInput) (*Resume, error) {
	var r Resume
	if err := c.do(ctx, http.MethodPost, resumesPath, nil, in, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResumes 当前导师的全部履历
func (c *Client) ListResumes(ctx context.Context) ([]Resume, error) {
	var list []Resume
	if err := c.do(ctx, http.MethodGet, resumesPath, nil, nil, &list, true); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Resume{}
	}
	return list, nil
}

func (c *Client) GetResume(ctx context.Context, id uint) (*Resume, error) {
	var r Resume
	if err := c.do(ctx, http.MethodGet, resumePath(id), nil, nil, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateResume 局部更新履历
func (c *Client) UpdateResume(ctx context.Context, id uint, in ResumeUpdate) (*Resume, error) {
	var r Resume
	if err := c.do(ctx, http.MethodPut, resumePath(id), nil, in, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

package service_test

import (
	"testing"

	"mentorship-system/internal/repository"
	"mentorship-system/internal/service"
	"mentorship-system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeOwnership(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := service.NewResumeService(repository.NewResumeRepository(db))
	owner := testutil.CreateMentor(t, db, "Bob")
	other := testutil.CreateMentor(t, db, "Carl")

	created, err := svc.Create(owner.ID, service.ResumeInput{University: " MIT ", Title: "Admissions", Description: "Coaching"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.MentorID)
	assert.Equal(t, "MIT", created.University)

	got, err := svc.Get(owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admissions", got.Title)

	_, err = svc.Get(other.ID, created.ID)
	assert.ErrorIs(t, err, service.ErrResumeAccessDenied)
	_, err = svc.Update(other.ID, created.ID, service.ResumeUpdate{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, service.ErrResumeUpdateDenied)
	_, err = svc.Get(owner.ID, 999)
	assert.ErrorIs(t, err, service.ErrResumeNotFound)

	updated, err := svc.Update(owner.ID, created.ID, service.ResumeUpdate{Description: strPtr("Ten years")})
	require.NoError(t, err)
	assert.Equal(t, "Admissions", updated.Title)
	assert.Equal(t, "Ten years", updated.Description)

	mine, err := svc.List(owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := svc.List(other.ID)
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Empty(t, theirs)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	"mentorship-system/internal/repository"
	"mentorship-system/internal/service"
	"mentorship-system/internal/testutil"
	"mentorship-system/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour, Issuer: "mentorship-system"})
}

func TestSignUpAndSignIn(t *testing.T) {
	db := testutil.OpenTestDB(t)
	jwtSvc := newJWT()
	svc := service.NewAuthService(repository.NewUserRepository(db), repository.NewMentorRepository(db), jwtSvc)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, model.RoleMentor, service.SignUpInput{
		Name:       "Bob",
		Email:      " Bob@Example.com ",
		Password:   "correct horse",
		University: "MIT",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.RoleMentor, created.Role)
	assert.True(t, created.IsActive)

	_, err = svc.SignIn(model.RoleMentor, "bob@example.com", "wrong password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// 同一邮箱在学生表中不存在
	_, err = svc.SignIn(model.RoleUser, "bob@example.com", "correct horse")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	token, err := svc.SignIn(model.RoleMentor, "BOB@example.com", "correct horse")
	require.NoError(t, err)
	claims, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMentor, claims.Role())
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	profile, err := svc.Profile(model.RoleMentor, id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", profile.Name)
	assert.Equal(t, "bob@example.com", profile.Email)
	assert.Equal(t, "MIT", profile.University)
}

func TestSignUpValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := service.NewAuthService(repository.NewUserRepository(db), repository.NewMentorRepository(db), newJWT())
	ctx := context.Background()

	_, err := svc.SignUp(ctx, model.RoleUser, service.SignUpInput{Name: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, service.ErrWeakPassword)

	_, err = svc.SignUp(ctx, "admin", service.SignUpInput{Name: "A", Email: "a@example.com", Password: "long enough"})
	assert.ErrorIs(t, err, service.ErrInvalidRole)

	_, err = svc.SignUp(ctx, model.RoleUser, service.SignUpInput{
		Name: "A", Email: "a@example.com", Password: "long enough",
		TargetUniversities: []string{"MIT", "ETH"},
	})
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, model.RoleUser, service.SignUpInput{Name: "A2", Email: "A@example.com", Password: "long enough"})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	u, err := repository.NewUserRepository(db).GetByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"MIT", "ETH"}, u.Universities())
}

func TestSignInInactiveAccount(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := repository.NewUserRepository(db)
	svc := service.NewAuthService(users, repository.NewMentorRepository(db), newJWT())

	_, err := svc.SignUp(context.Background(), model.RoleUser, service.SignUpInput{Name: "A", Email: "a@example.com", Password: "long enough"})
	require.NoError(t, err)

	u, err := users.GetByEmail("a@example.com")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, users.Update(u))

	_, err = svc.SignIn(model.RoleUser, "a@example.com", "long enough")
	assert.ErrorIs(t, err, service.ErrInactiveAccount)
}

func TestProfileUnknownAccount(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := service.NewAuthService(repository.NewUserRepository(db), repository.NewMentorRepository(db), newJWT())

	_, err := svc.Profile(model.RoleUser, 77)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileChangesOnlyGivenFields(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := service.NewAuthService(repository.NewUserRepository(db), repository.NewMentorRepository(db), newJWT())
	ctx := context.Background()
	m := testutil.CreateMentor(t, db, "Bob")
	u := testutil.CreateUser(t, db, "Alice")

	profile, err := svc.UpdateProfile(ctx, model.RoleMentor, m.ID, service.ProfileUpdate{
		Title:       strPtr("Professor"),
		Description: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Professor", profile.Title)
	assert.Equal(t, "MIT", profile.University)
	assert.Equal(t, "Bob", profile.Name)

	targets := []string{"ETH", "EPFL"}
	profile, err = svc.UpdateProfile(ctx, model.RoleUser, u.ID, service.ProfileUpdate{
		Name:               strPtr("  Alice B "),
		TargetUniversities: &targets,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", profile.Name)
	assert.Equal(t, targets, profile.TargetUniversities)

	_, err = svc.UpdateProfile(ctx, model.RoleUser, u.ID, service.ProfileUpdate{Name: strPtr("   ")})
	assert.ErrorIs(t, err, service.ErrEmptyName)
	_, err = svc.UpdateProfile(ctx, model.RoleUser, 99, service.ProfileUpdate{})
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
	_, err = svc.UpdateProfile(ctx, "admin", u.ID, service.ProfileUpdate{})
	assert.ErrorIs(t, err, service.ErrInvalidRole)
}

func TestMentorProfileHidesInactive(t *testing.T) {
	db := testutil.OpenTestDB(t)
	mentors := repository.NewMentorRepository(db)
	svc := service.NewAuthService(repository.NewUserRepository(db), mentors, newJWT())
	m := testutil.CreateMentor(t, db, "Bob")

	profile, err := svc.MentorProfile(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", profile.Name)

	m.IsActive = false
	require.NoError(t, mentors.Update(m))
	_, err = svc.MentorProfile(m.ID)
	assert.ErrorIs(t, err, service.ErrMentorNotFound)
	_, err = svc.MentorProfile(404)
	assert.ErrorIs(t, err, service.ErrMentorNotFound)
}

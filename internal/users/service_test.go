package users

import (
	"context"
	"testing"

	"agile-exchange-backend/internal/auth"
	"agile-exchange-backend/internal/constants"
	"agile-exchange-backend/internal/middleware"
	"agile-exchange-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &Service{DB: db, Rdb: rdb}, db, rdb
}

func seedUser(t *testing.T, svc *Service, email, role string) *models.User {
	u, err := svc.Create(context.Background(), auth.RegisterInput{
		Email:     email,
		Password:  "passw0rd1",
		FirstName: "Seed",
		LastName:  "User",
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func TestCreateAndList(t *testing.T) {
	svc, _, _ := setupService(t)
	seedUser(t, svc, "a@team.example", constants.TeamMember)
	seedUser(t, svc, "b@team.example", constants.ScrumMaster)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@team.example", users[0].Email)
}

func TestRemove_SelfRefused(t *testing.T) {
	svc, _, _ := setupService(t)
	u := seedUser(t, svc, "self@team.example", constants.ProductOwner)

	err := svc.Remove(context.Background(), u.ID, u.ID)
	assert.ErrorIs(t, err, ErrSelfRemoval)
}

func TestRemove_RevokesTokens(t *testing.T) {
	svc, db, rdb := setupService(t)
	actor := seedUser(t, svc, "po@team.example", constants.ProductOwner)
	target := seedUser(t, svc, "gone@team.example", constants.TeamMember)

	// Target has a live session.
	token, err := middleware.IssueToken(context.Background(), rdb, middleware.AuthUser{
		ID:    target.ID.String(),
		Email: target.Email,
		Role:  target.Role,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), actor.ID, target.ID))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	exists, err := rdb.Exists(context.Background(), "auth_token:"+token).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestRemove_Unknown(t *testing.T) {
	svc, _, _ := setupService(t)
	actor := seedUser(t, svc, "po@team.example", constants.ProductOwner)

	err := svc.Remove(context.Background(), actor.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := setupService(t)
	u := seedUser(t, svc, "old@team.example", constants.TeamMember)

	first := "Renamed"
	email := "new@team.example"
	updated, err := svc.UpdateProfile(context.Background(), u.ID, ProfileInput{FirstName: &first, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, "new@team.example", updated.Email)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc, _, _ := setupService(t)
	u := seedUser(t, svc, "me@team.example", constants.TeamMember)
	seedUser(t, svc, "taken@team.example", constants.TeamMember)

	_, err := svc.UpdateProfile(context.Background(), u.ID, ProfileInput{})
	assert.ErrorIs(t, err, ErrNothingToSave)

	bad := "not-an-email"
	_, err = svc.UpdateProfile(context.Background(), u.ID, ProfileInput{Email: &bad})
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)

	taken := "taken@team.example"
	_, err = svc.UpdateProfile(context.Background(), u.ID, ProfileInput{Email: &taken})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

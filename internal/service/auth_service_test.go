package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukalink/duka_api/internal/utils"
)

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	_, err := svc.Register(&RegisterRequest{
		Email:    "not-an-email",
		Fullname: "Wanjiku Kamau",
		Password: "secret123",
	})

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Zero(t, store.createCalls, "store must not be touched on invalid input")
}

func TestRegisterHashesPasswordAndDefaultsFlags(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "wanjiku@duka.co.ke",
		Fullname: "Wanjiku Kamau",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.False(t, resp.IsAdmin)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "wanjiku@duka.co.ke", resp.Email)

	stored := store.users[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("secret123")))
}

func TestRegisterResponseLeaksNoPasswordMaterial(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "wanjiku@duka.co.ke",
		Fullname: "Wanjiku Kamau",
		Password: "secret123",
	})
	require.NoError(t, err)

	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "secret123")
}

func TestRegisterRefusesDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	_, err := svc.Register(&RegisterRequest{
		Email:    "wanjiku@duka.co.ke",
		Fullname: "Wanjiku Kamau",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Email:    "wanjiku@duka.co.ke",
		Fullname: "Another Wanjiku",
		Password: "other456",
	})
	assert.ErrorIs(t, err, utils.ErrEmailExists)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	_, err := svc.Register(&RegisterRequest{
		Email:    "wanjiku@duka.co.ke",
		Fullname: "Wanjiku Kamau",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginRequest{Email: "wanjiku@duka.co.ke", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())

	_, _, err := svc.Login(&LoginRequest{Email: "nobody@duka.co.ke", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginIssuesValidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	store := newFakeUserStore()
	svc := NewAuthService(store)

	reg, err := svc.Register(&RegisterRequest{
		Email:    "wanjiku@duka.co.ke",
		Fullname: "Wanjiku Kamau",
		Password: "secret123",
	})
	require.NoError(t, err)

	token, resp, err := svc.Login(&LoginRequest{Email: "wanjiku@duka.co.ke", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, resp.ID)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.UserID)
	assert.Equal(t, "wanjiku@duka.co.ke", claims.Email)
	assert.False(t, claims.IsAdmin)
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GymDesk/gymdesk/auth"
	"github.com/GymDesk/gymdesk/models/account"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegister_InvalidEmail(t *testing.T) {
	setupAuth(t)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "joe", Email: "not-an-email", Password: "secret1",
	})
	Register(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email format", decodeBody(t, w)["message"])
}

func TestRegister_InvalidRole(t *testing.T) {
	setupAuth(t)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "joe", Email: "joe@example.com", Password: "secret1", Role: "superuser",
	})
	Register(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role", decodeBody(t, w)["message"])
}

func TestRegister_Duplicate(t *testing.T) {
	accounts, _ := setupAuth(t)
	_, err := accounts.Create("u1", "joe", "joe@example.com", "hash", "Joe", "Smith", account.RoleUser, true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "joe", Email: "joe@example.com", Password: "secret1",
	})
	Register(w, r, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email or username already exists", decodeBody(t, w)["message"])
}

func TestRegister_DefaultRole(t *testing.T) {
	accounts, members := setupAuth(t)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "joe", Email: "joe@example.com", Password: "secret1",
		FirstName: "Joe", LastName: "Smith",
	})
	Register(w, r, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["userId"])
	assert.Nil(t, body["memberId"])

	created, err := accounts.FindByEmail("joe@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.RoleUser, created.Role)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "secret1", created.Password)
	assert.Empty(t, members.members)
}

func TestRegister_MemberRoleCreatesMemberRecord(t *testing.T) {
	accounts, members := setupAuth(t)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "secret1", Role: "member",
	})
	Register(w, r, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["memberId"])

	created, err := accounts.FindByEmail("jane@example.com")
	require.NoError(t, err)
	m, err := members.FindByUserID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, body["memberId"], m.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	setupAuth(t)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	Login(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["message"])
}

func TestLogin_WrongPassword(t *testing.T) {
	accounts, _ := setupAuth(t)
	hash, _ := auth.HashPassword("right")
	_, err := accounts.Create("u1", "joe", "joe@example.com", hash, "Joe", "Smith", account.RoleUser, true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
		Email: "joe@example.com", Password: "wrong",
	})
	Login(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["message"])
}

func TestLogin_BootstrapAutoCreatesAdmin(t *testing.T) {
	accounts, _ := setupAuth(t)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
		Email: "admin@example.com", Password: "Admin123",
	})
	Login(w, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	created, err := accounts.FindByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, created.Role)
	assert.True(t, auth.CheckPassword("Admin123", created.Password))
	assert.Len(t, accounts.accounts, 1)
}

func TestLogin_BootstrapIsIdempotent(t *testing.T) {
	accounts, _ := setupAuth(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
			Email: "admin@example.com", Password: "Admin123",
		})
		Login(w, r, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Len(t, accounts.accounts, 1)
}

func TestLogin_BootstrapSelfHealsAdminPassword(t *testing.T) {
	accounts, _ := setupAuth(t)

	// Admin exists but its hash has drifted from the configured
	// bootstrap password.
	staleHash, _ := auth.HashPassword("SomethingElse")
	_, err := accounts.Create("admin-1", "admin", "admin@example.com", staleHash, "Admin", "User", account.RoleAdmin, true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
		Email: "admin@example.com", Password: "Admin123",
	})
	Login(w, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, accounts.passwordUpdates)

	healed, err := accounts.FindByEmail("admin@example.com")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("Admin123", healed.Password))
}

func TestLogin_InactiveAccount(t *testing.T) {
	accounts, _ := setupAuth(t)
	hash, _ := auth.HashPassword("secret1")
	_, err := accounts.Create("u1", "joe", "joe@example.com", hash, "Joe", "Smith", account.RoleUser, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
		Email: "joe@example.com", Password: "secret1",
	})
	Login(w, r, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account is inactive", decodeBody(t, w)["message"])
}

func TestLogin_BackfillsMemberRecord(t *testing.T) {
	accounts, members := setupAuth(t)
	hash, _ := auth.HashPassword("secret1")
	_, err := accounts.Create("u1", "jane", "jane@example.com", hash, "Jane", "Doe", account.RoleMember, true)
	require.NoError(t, err)

	var firstMemberID interface{}
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
			Email: "jane@example.com", Password: "secret1",
		})
		Login(w, r, nil)

		require.Equal(t, http.StatusOK, w.Code)
		user := decodeBody(t, w)["user"].(map[string]interface{})
		require.NotEmpty(t, user["member_id"])
		if i == 0 {
			firstMemberID = user["member_id"]
		} else {
			// The second login reuses the backfilled record.
			assert.Equal(t, firstMemberID, user["member_id"])
		}
	}

	assert.Len(t, members.members, 1)
}

func TestLogin_UserProjection(t *testing.T) {
	accounts, members := setupAuth(t)
	hash, _ := auth.HashPassword("secret1")
	_, err := accounts.Create("u1", "jane", "jane@example.com", hash, "Jane", "Doe", account.RoleMember, true)
	require.NoError(t, err)
	members.Create("m1", "u1")

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/auth/login", LoginRequest{
		Email: "jane@example.com", Password: "secret1",
	})
	Login(w, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})

	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "jane", user["username"])
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, "Jane", user["first_name"])
	assert.Equal(t, "Doe", user["last_name"])
	assert.Equal(t, "member", user["role"])
	assert.Equal(t, "m1", user["member_id"])

	// The login payload carries identity only; account state and
	// contact fields belong to the profile endpoint.
	assert.NotContains(t, user, "is_active")
	assert.NotContains(t, user, "phone")
	assert.Len(t, user, 7)
}

func TestChangePassword(t *testing.T) {
	accounts, _ := setupAuth(t)
	hash, _ := auth.HashPassword("OldPass1")
	_, err := accounts.Create("u1", "joe", "joe@example.com", hash, "Joe", "Smith", account.RoleUser, true)
	require.NoError(t, err)

	asUser := func(r *http.Request) *http.Request {
		ctx := context.WithValue(r.Context(), auth.UserContextKey, &auth.Claims{UserID: "u1", Email: "joe@example.com", Role: "user"})
		return r.WithContext(ctx)
	}

	t.Run("wrong old password", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := asUser(jsonRequest(http.MethodPost, "/api/auth/change-password", ChangePasswordRequest{
			OldPassword: "nope", NewPassword: "NewPass1",
		}))
		ChangePassword(w, r, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Old password is incorrect", decodeBody(t, w)["message"])
	})

	t.Run("ok", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := asUser(jsonRequest(http.MethodPost, "/api/auth/change-password", ChangePasswordRequest{
			OldPassword: "OldPass1", NewPassword: "NewPass1",
		}))
		ChangePassword(w, r, nil)

		require.Equal(t, http.StatusOK, w.Code)
		acc, err := accounts.FindByID("u1")
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword("NewPass1", acc.Password))
	})
}

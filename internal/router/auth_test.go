package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginTokenAuthorizesProtectedRoutes(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana Pérez", "ana")

	w := s.do(http.MethodGet, "/plan-maestro", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/plan-maestro", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", message(t, w, "message"))

	w = s.do(http.MethodGet, "/plan-maestro", "0123456789abcdef", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/plan-maestro", token+"00", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestServer(t)

	id := s.register("Beto Ruiz", "beto", "s3creta")
	assert.NotZero(t, id)

	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "beto", "password": "s3creta"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID     uint   `json:"id"`
			Nombre string `json:"nombre"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Token, 64)
	assert.Equal(t, id, resp.User.ID)
	assert.Equal(t, "Beto Ruiz", resp.User.Nombre)

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "beto", "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Credenciales inválidas", message(t, w, "error"))

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "nadie", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "beto"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	s.register("Ana", "ana", "clave")

	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{"nombre": "Otra Ana", "username": "ana", "password": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/auth/register", "", map[string]string{"username": "sin_nombre", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/auth/register", "", map[string]string{"nombre": "X", "username": "a b!", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/auth/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	id, token := s.user("Ana", "ana")

	w := s.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	decode(t, w, &me)
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "ana", me.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserManagement(t *testing.T) {
	s := newTestServer(t)
	adminID, admin := s.user("Admin", "admin")
	require.Equal(t, uint(1), adminID)
	betoID, beto := s.user("Beto", "beto")

	w := s.do(http.MethodPost, "/usuarios", beto, map[string]string{"nombre": "Carla", "username": "carla", "password": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/usuarios", admin, map[string]string{"nombre": "Carla", "username": "carla", "password": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, w, &created)

	// self edit, including a password change
	w = s.do(http.MethodPut, "/usuarios/"+itoa(betoID), beto, map[string]string{"nombre": "Beto R.", "password": "nueva"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.login("beto", "nueva")

	w = s.do(http.MethodPut, "/usuarios/"+itoa(created.ID), beto, map[string]string{"nombre": "Hack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/usuarios/"+itoa(betoID), beto, map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/usuarios", beto, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]interface{}
	decode(t, w, &users)
	require.Len(t, users, 3)
	assert.Equal(t, "Beto R.", users[1]["nombre"])
	_, hasHash := users[0]["password_hash"]
	assert.False(t, hasHash)

	w = s.do(http.MethodDelete, "/usuarios/"+itoa(created.ID), beto, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodDelete, "/usuarios/"+itoa(created.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, "/usuarios/"+itoa(created.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

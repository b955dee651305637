package controller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vdtri/toeicmate/database"
	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
	"github.com/vdtri/toeicmate/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSession(t *testing.T, hydrate bool) (*session.Store, *gorm.DB, *store.Bus) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	bus := store.NewBus()
	sess := session.NewStore(repository.NewSettingRepository(db))
	if hydrate {
		sess.Hydrate()
		t.Cleanup(sess.Flush)
	}
	return sess, db, bus
}

func TestRequireUserWhileHydrating(t *testing.T) {
	sess, _, _ := testSession(t, false)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/attempts", nil)

	_, ok := requireUser(ctx, sess)
	assert.False(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireUserWhenLoggedOut(t *testing.T) {
	sess, _, _ := testSession(t, true)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/attempts", nil)

	_, ok := requireUser(ctx, sess)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserWithActiveUser(t *testing.T) {
	sess, _, _ := testSession(t, true)
	sess.SetCurrentUser(&model.User{ID: 9, Name: "An"})

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/attempts", nil)

	user, ok := requireUser(ctx, sess)
	require.True(t, ok)
	assert.Equal(t, uint(9), user.ID)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"validation", &apperr.ValidationError{Field: "name", Reason: "empty"}, http.StatusBadRequest},
		{"gateway", apperr.Gateway("grade", assert.AnError), http.StatusBadGateway},
		{"storage", apperr.Storage("write", assert.AnError), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			respondError(ctx, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestLoginEndpointRoundTrip(t *testing.T) {
	sess, db, bus := testSession(t, true)
	users := repository.NewUserRepository(db, bus)
	ctrl := NewSessionController(service.NewUserService(users, sess), sess)

	router := gin.New()
	router.POST("/auth/login", ctrl.Login)
	router.GET("/session", ctrl.GetSession)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"name":"Minh"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Minh")
	assert.Contains(t, rec.Body.String(), `"is_loading":false`)
}

func TestLoginEndpointRejectsEmptyName(t *testing.T) {
	sess, db, bus := testSession(t, true)
	users := repository.NewUserRepository(db, bus)
	ctrl := NewSessionController(service.NewUserService(users, sess), sess)

	router := gin.New()
	router.POST("/auth/login", ctrl.Login)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

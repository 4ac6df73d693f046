package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/core/mock"
	"github.com/totegamma/charsheet/internal/testutil"
)

func TestIdentifyIdentity(t *testing.T) {
	testutil.SetupMockTraceProvider()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := mock_core.NewMockIdentityService(ctrl)
	mockIdentity.EXPECT().ResolveCaller(gomock.Any(), "usertoken").Return(core.User{ID: "1001"}, nil)

	service := NewService(mockIdentity)

	c, req, _, _ := testutil.CreateHttpRequest()
	req.Header.Set("Authorization", "Bearer usertoken")

	h := service.IdentifyIdentity(func(c echo.Context) error {
		return nil
	})

	err := h(c)
	if assert.NoError(t, err) {
		assert.Equal(t, "usertoken", c.Get(core.RequesterTokenCtxKey))
		assert.Equal(t, "1001", c.Get(core.RequesterIdCtxKey))
		assert.Equal(t, "usertoken", RequesterToken(c))
	}
}

func TestIdentifyIdentityRejectedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := mock_core.NewMockIdentityService(ctrl)
	mockIdentity.EXPECT().ResolveCaller(gomock.Any(), "expired").Return(core.User{}, core.NewErrorUnauthorized())

	service := NewService(mockIdentity)

	c, req, _, _ := testutil.CreateHttpRequest()
	req.Header.Set("Authorization", "Bearer expired")

	called := false
	h := service.IdentifyIdentity(func(c echo.Context) error {
		called = true
		return nil
	})

	err := h(c)
	if assert.NoError(t, err) {
		assert.True(t, called)
		assert.Equal(t, "expired", c.Get(core.RequesterTokenCtxKey))
		assert.Nil(t, c.Get(core.RequesterIdCtxKey))
	}
}

func TestIdentifyIdentityIgnoresOtherSchemes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := mock_core.NewMockIdentityService(ctrl)
	service := NewService(mockIdentity)

	c, req, _, _ := testutil.CreateHttpRequest()
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	h := service.IdentifyIdentity(func(c echo.Context) error {
		return nil
	})

	err := h(c)
	if assert.NoError(t, err) {
		assert.Nil(t, c.Get(core.RequesterTokenCtxKey))
		assert.Equal(t, "", RequesterToken(c))
	}
}

func TestRestrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mock_core.NewMockIdentityService(ctrl))

	h := service.Restrict(ISKNOWN)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(core.RequesterIdCtxKey, "1001")
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

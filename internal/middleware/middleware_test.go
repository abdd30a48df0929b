package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func runActor(t *testing.T, authorization string) domain.Actor {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.1.1.1")
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var actor domain.Actor
	err := Actor(secret)(func(c echo.Context) error {
		actor = GetActor(c)
		return nil
	})(c)
	require.NoError(t, err)

	return actor
}

func TestActor(t *testing.T) {
	token, err := utils.CreateJWTToken("0b9f7c1e-3d4a-4f5b-8c6d-7e8f9a0b1c2d", "Admin", "admin", secret)
	require.NoError(t, err)
	foreign, err := utils.CreateJWTToken("0b9f7c1e-3d4a-4f5b-8c6d-7e8f9a0b1c2d", "Admin", "admin", "other-secret")
	require.NoError(t, err)

	testCases := []struct {
		Name          string
		Authorization string
		ExpectedName  string
	}{
		{Name: "no token", ExpectedName: domain.SystemActor},
		{Name: "valid token", Authorization: "Bearer " + token, ExpectedName: "0b9f7c1e-3d4a-4f5b-8c6d-7e8f9a0b1c2d"},
		{Name: "token signed with another secret", Authorization: "Bearer " + foreign, ExpectedName: domain.SystemActor},
		{Name: "garbage", Authorization: "Bearer nope", ExpectedName: domain.SystemActor},
		{Name: "wrong scheme", Authorization: "Basic " + token, ExpectedName: domain.SystemActor},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			actor := runActor(t, tc.Authorization)
			assert.Equal(t, tc.ExpectedName, actor.Name())
			assert.Equal(t, "10.1.1.1", actor.IPAddress)
		})
	}
}

func TestGetActorWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, domain.SystemActor, GetActor(c).Name())
	assert.Nil(t, GetActor(c).Ref())
}

func TestLoggerSetsRequestID(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := Logger(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})(c)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

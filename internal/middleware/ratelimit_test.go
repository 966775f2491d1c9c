package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/core/internal/pkg/jwt"
)

func requestContext(t *testing.T, authorization string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c
}

func TestHasValidTokenWithSignedBearer(t *testing.T) {
	token, err := jwt.Sign("user-1", time.Minute)
	require.NoError(t, err)

	c := requestContext(t, "Bearer "+token)
	assert.True(t, hasValidToken(c))
}

func TestHasValidTokenRejectsGarbage(t *testing.T) {
	assert.False(t, hasValidToken(requestContext(t, "")))
	assert.False(t, hasValidToken(requestContext(t, "Bearer not-a-token")))
}

func TestHasValidTokenRejectsExpired(t *testing.T) {
	token, err := jwt.Sign("user-1", -time.Minute)
	require.NoError(t, err)

	c := requestContext(t, "Bearer "+token)
	assert.False(t, hasValidToken(c))
}

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "cs_"))
	assert.Len(t, a, 3+64)
	assert.NotEqual(t, a, b)
}

func TestDeriveKeyIsStablePerPurpose(t *testing.T) {
	k1, err := DeriveKey("secret", "cookie-hash", 32)
	require.NoError(t, err)
	k2, err := DeriveKey("secret", "cookie-hash", 32)
	require.NoError(t, err)
	k3, err := DeriveKey("secret", "csrf", 32)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, 32)
}

func TestSignatureRoundTrip(t *testing.T) {
	key := []byte("k")
	sig := GenerateSignature([]byte("cs_1"), key)
	assert.True(t, VerifySignature([]byte("cs_1"), sig, key))
	assert.False(t, VerifySignature([]byte("cs_2"), sig, key))
	assert.False(t, VerifySignature([]byte("cs_1"), "", key))
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "abcd1234")

	Error(c, http.StatusForbidden, CodeCSRFInvalid, "invalid form token")

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, CodeCSRFInvalid, resp.Error.Code)
	assert.Equal(t, "abcd1234", resp.Meta.RequestID)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"market/common/utils"
)

const testKey = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", Auth(), func(c *gin.Context) {
		c.String(http.StatusOK, string(Caller(c)))
	})
	return r
}

func signedRequest(t *testing.T, body, sigTime string) *http.Request {
	t.Helper()
	sig, err := SignRequest([]byte(body), sigTime, testKey)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(body))
	req.Header.Set("X-Signature", sig)
	req.Header.Set("X-Sig-Time", sigTime)
	return req
}

func TestAuthRecoversCaller(t *testing.T) {
	r := newAuthRouter()
	sigTime := strconv.FormatInt(time.Now().Unix(), 10)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, `{"token_id":"1"}`, sigTime))
	require.Equal(t, http.StatusOK, w.Code)

	key, err := utils.HexToECDSA(testKey)
	require.NoError(t, err)
	require.Equal(t, string(utils.PubkeyToAddress(key.PubKey())), w.Body.String())
}

func TestAuthMissingHeaders(t *testing.T) {
	r := newAuthRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/echo", strings.NewReader("{}")))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthStaleTimestamp(t *testing.T) {
	r := newAuthRouter()
	sigTime := strconv.FormatInt(time.Now().Unix()-3600, 10)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, "{}", sigTime))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthTamperedBody(t *testing.T) {
	r := newAuthRouter()
	sigTime := strconv.FormatInt(time.Now().Unix(), 10)
	sig, err := SignRequest([]byte(`{"price":"10"}`), sigTime, testKey)
	require.NoError(t, err)

	// another body under the same signature recovers a different identity
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"price":"99"}`))
	req.Header.Set("X-Signature", sig)
	req.Header.Set("X-Sig-Time", sigTime)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	key, _ := utils.HexToECDSA(testKey)
	require.NotEqual(t, string(utils.PubkeyToAddress(key.PubKey())), w.Body.String())
}

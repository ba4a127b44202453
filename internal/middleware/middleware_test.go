package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-booking/internal/config"
	"github.com/iliyamo/train-booking/internal/utils"
)

const testSecret = "test-secret"

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestJWTAuth(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "u-42", "CUSTOMER", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + tok.Token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/v1/profile")
			if tc.header != "" {
				c.Request().Header.Set("Authorization", tc.header)
			}
			require.NoError(t, JWTAuth(testSecret)(ok)(c))
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "u-42", UserID(c))
				assert.Equal(t, "CUSTOMER", Role(c))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("CUSTOMER", "ADMIN")

	c, rec := newContext(http.MethodPost, "/v1/tickets")
	c.Set("role", "ADMIN")
	require.NoError(t, mw(ok)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodPost, "/v1/tickets")
	c.Set("role", "GUEST")
	require.NoError(t, mw(ok)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newContext(http.MethodPost, "/v1/tickets")
	require.NoError(t, mw(ok)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNilRedisPassesThrough(t *testing.T) {
	cache := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)
	limit := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)

	c, rec := newContext(http.MethodGet, "/v1/stations-search?query=del")
	require.NoError(t, limit(cache(ok))(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a, _ := newContext(http.MethodGet, "/v1/stations-search?query=del")
	a.SetPath("/v1/stations-search")
	b, _ := newContext(http.MethodGet, "/v1/stations-search?query=mum")
	b.SetPath("/v1/stations-search")
	a2, _ := newContext(http.MethodHead, "/v1/stations-search?query=del")
	a2.SetPath("/v1/stations-search")

	ka := cacheKeyFrom(cfg, a)
	assert.True(t, strings.HasPrefix(ka, "cache:"))
	assert.NotEqual(t, ka, cacheKeyFrom(cfg, b))
	assert.Equal(t, ka, cacheKeyFrom(cfg, a2))

	cfg.KeyStrategy = "method_route_query"
	assert.NotEqual(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, a2))

	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"success":true}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"success":true}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("defg"))
	assert.Equal(t, "abcd", cw.buf.String())
	assert.Equal(t, int64(7), cw.size)
	assert.Equal(t, "abcdefg", rec.Body.String())
}

func TestBuildRateKey(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/v1/train-search")
	c.SetPath("/v1/train-search")
	c.Request().RemoteAddr = "10.0.0.7:5555"

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	assert.Equal(t, "rl:ip:10.0.0.7:user:anon:route:GET /v1/train-search", buildRateKey(cfg, c))

	c.Set("user_id", "u-1")
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:u-1", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.7", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(4), asInt64(float64(4)))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestRequestLogger(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	c, _ := newContext(http.MethodGet, "/healthz")
	require.NoError(t, RequestLogger()(ok)(c))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])

	c, _ = newContext(http.MethodGet, "/missing")
	fail := func(echo.Context) error { return echo.ErrNotFound }
	require.NoError(t, RequestLogger()(fail)(c))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, http.StatusNotFound, hook.LastEntry().Data["status"])
}

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apii "github.com/beka-birhanu/vinom-pathviz/api/i"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type echoController struct{}

func (echoController) RegisterRoot(route gin.IRoutes) {
	route.GET("/root", func(c *gin.Context) { c.String(http.StatusOK, "root") })
}

func (echoController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, "open") })
}

func (echoController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/closed", func(c *gin.Context) { c.String(http.StatusOK, "closed") })
}

func get(h http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(Config{
		BaseURL:     "/api",
		Controllers: []apii.Controller{echoController{}},
		AuthorizationMiddleware: func(c *gin.Context) {
			if c.GetHeader("Authorization") == "" {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.Next()
		},
		Metrics: metrics.New(),
	})
	h := router.Handler()

	tests := []struct {
		name          string
		path          string
		authorization string
		want          int
		body          string
	}{
		{name: "health", path: "/healthz", want: http.StatusOK, body: `"ok"`},
		{name: "root route", path: "/root", want: http.StatusOK, body: "root"},
		{name: "public route", path: "/api/v1/open", want: http.StatusOK, body: "open"},
		{name: "protected without token", path: "/api/v1/closed", want: http.StatusUnauthorized},
		{name: "protected with token", path: "/api/v1/closed", authorization: "Bearer x", want: http.StatusOK, body: "closed"},
		{name: "unknown route", path: "/nope", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h, tt.path, tt.authorization)
			assert.Equal(t, tt.want, rec.Code)
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}

	t.Run("metrics exposition", func(t *testing.T) {
		rec := get(h, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `pathviz_http_request_duration_seconds_count{method="GET",route="/api/v1/open",status="200"} 1`)
		assert.Contains(t, body, `route="unmatched",status="404"`)
		assert.Contains(t, body, `route="/api/v1/closed",status="401"`)
	})
}

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("body = %s, want ok:true", w.Body.String())
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := testEngine()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodPost, "/api/threads"},
		{http.MethodPost, "/api/threads/1/vote"},
		{http.MethodPost, "/api/comments/1/vote"},
		{http.MethodDelete, "/api/comments/1"},
		{http.MethodDelete, "/api/comments/1/tree"},
		{http.MethodPost, "/api/categories"},
		{http.MethodGet, "/api/subscriptions"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(rt.method, rt.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt.method, rt.path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok":false`) {
			t.Errorf("%s %s: body = %s, want ok:false envelope", rt.method, rt.path, w.Body.String())
		}
	}
}

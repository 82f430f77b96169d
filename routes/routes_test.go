package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := SetupRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestWrongMethodIs405(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/save-analysis")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Method not allowed")
}

func TestUnknownRouteIs404(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreflightAdvertisesEndpointMethods(t *testing.T) {
	w := serve(t, http.MethodOptions, "/api/delete-analysis")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLookupUserIDAcceptsBothMethods(t *testing.T) {
	w := serve(t, http.MethodOptions, "/api/lookup-user-id")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

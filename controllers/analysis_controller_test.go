package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func perform(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func analysisRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctl := NewAnalysisController(nil)
	r.POST("/api/save-analysis", ctl.SaveAnalysis)
	r.GET("/api/get-analysis", ctl.GetAnalysis)
	r.DELETE("/api/delete-analysis", ctl.DeleteAnalysis)
	return r
}

func TestSaveAnalysisMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing userId", `{"imagePath":"a.jpg","analysisResult":{"foods":[]}}`},
		{"missing imagePath", `{"userId":"u1","analysisResult":{"foods":[]}}`},
		{"missing analysisResult", `{"userId":"u1","imagePath":"a.jpg"}`},
		{"malformed json", `{"userId":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(analysisRouter(), http.MethodPost, "/api/save-analysis", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing required fields")
		})
	}
}

func TestGetAnalysisRequiresUserID(t *testing.T) {
	w := perform(analysisRouter(), http.MethodGet, "/api/get-analysis", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UserId is required")
}

func TestDeleteAnalysisRequiresID(t *testing.T) {
	w := perform(analysisRouter(), http.MethodDelete, "/api/delete-analysis", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Analysis ID is required")
}

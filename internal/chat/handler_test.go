package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestChatHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&Service{}).RegisterRoutes(r.Group("/api/v1"))

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{name: "offline reply", body: `{"message":"diet ideas"}`, status: http.StatusOK, want: `"source":"offline"`},
		{name: "missing message", body: `{"includePlanContext":false}`, status: http.StatusBadRequest, want: "message is required"},
		{name: "too long", body: `{"message":"` + strings.Repeat("x", 2001) + `"}`, status: http.StatusBadRequest, want: "Message too long"},
		{name: "not json", body: `message=hi`, status: http.StatusBadRequest, want: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			if resp.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", resp.Code, tt.status, resp.Body.String())
			}
			if !strings.Contains(resp.Body.String(), tt.want) {
				t.Fatalf("body %s does not contain %q", resp.Body.String(), tt.want)
			}
			if tt.status == http.StatusOK {
				var out Response
				if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.Reply == "" {
					t.Fatalf("decode reply: %v %+v", err, out)
				}
			}
		})
	}
}

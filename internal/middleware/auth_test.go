package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"plugga_backend/internal/model"
	"plugga_backend/internal/util"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRouter(claims *util.Claims, required model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", func(c *gin.Context) {
		if claims != nil {
			c.Set("user", claims)
		}
		c.Next()
	}, RoleMiddleware(required), func(c *gin.Context) {
		util.Success(c, nil)
	})
	return r
}

func TestRoleMiddlewareRejectsStudentOnAdminRoute(t *testing.T) {
	r := roleRouter(&util.Claims{UserID: 1, Role: model.Student}, model.Admin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	var resp util.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Message != util.ErrPermissionDenied.Error() {
		t.Errorf("message = %q, want %q", resp.Message, util.ErrPermissionDenied.Error())
	}
}

func TestRoleMiddlewareAdminPassesEveryCheck(t *testing.T) {
	r := roleRouter(&util.Claims{UserID: 1, Role: model.Admin}, model.Student)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRoleMiddlewareMissingUserIsUnauthorized(t *testing.T) {
	r := roleRouter(nil, model.Admin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

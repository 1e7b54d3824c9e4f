package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"rentitforward/internal/domain/entity"
)

type stubUserRepo struct {
	user *entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.user, nil
}
func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.user, nil
}
func (r *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *stubUserRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	return nil
}
func (r *stubUserRepo) AddPushToken(ctx context.Context, id, token string) error    { return nil }
func (r *stubUserRepo) RemovePushToken(ctx context.Context, id, token string) error { return nil }
func (r *stubUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

func adminTestContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/announcements", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	admin := NewAdminMiddleware(&stubUserRepo{user: &entity.User{ID: "u1", Role: entity.RoleAdmin}})
	c, rec := adminTestContext(e)
	c.Set("uid", "u1")
	if assert.NoError(t, admin.AdminOnly(next)(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	plain := NewAdminMiddleware(&stubUserRepo{user: &entity.User{ID: "u2", Role: entity.RoleUser}})
	c, _ = adminTestContext(e)
	c.Set("uid", "u2")
	err := plain.AdminOnly(next)(c)
	if httpErr, ok := err.(*echo.HTTPError); assert.True(t, ok) {
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	}

	// No uid on context at all.
	c, _ = adminTestContext(e)
	err = admin.AdminOnly(next)(c)
	if httpErr, ok := err.(*echo.HTTPError); assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}

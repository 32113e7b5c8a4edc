package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasScope(t *testing.T) {
	admin := &Identity{ID: "k1", Scopes: []string{"*:*"}}
	reader := &Identity{ID: "k2", Scopes: []string{"teams:read", "buckets:read"}}

	assert.True(t, HasScope(admin, "teams", "write"))
	assert.True(t, HasScope(reader, "teams", "read"))
	assert.False(t, HasScope(reader, "teams", "write"))
	assert.False(t, HasScope(nil, "teams", "read"))
}

func TestRequireScope(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireScope("buckets", "write")(next)

	cases := []struct {
		name     string
		identity *Identity
		want     int
	}{
		{"matching scope", &Identity{Scopes: []string{"buckets:write"}}, http.StatusNoContent},
		{"wildcard", &Identity{Scopes: []string{"*:*"}}, http.StatusNoContent},
		{"wrong scope", &Identity{Scopes: []string{"buckets:read"}}, http.StatusForbidden},
		{"no identity", nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			if tc.identity != nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, tc.identity))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

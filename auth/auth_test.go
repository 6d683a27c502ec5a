package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent-server/cache"
	"rent-server/db"
	"rent-server/repositories"
)

func services(t *testing.T) map[string]*Service {
	database, err := db.Connect(db.Options{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return map[string]*Service{
		"gorm":   NewService(repositories.NewPgStore(database).Users),
		"memory": NewService(memoryUsers()),
	}
}

func memoryUsers() Users {
	return repositories.NewMemoryStore(cache.Seed{}).Users
}

func TestRegisterLoginIdentity(t *testing.T) {
	for name, svc := range services(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user, err := svc.Register(ctx, "landlord", "landlord@example.com", "hunter2")
			require.NoError(t, err)
			assert.NotEqual(t, "hunter2", user.PasswordHash)

			_, err = svc.Register(ctx, "landlord", "other@example.com", "x")
			assert.ErrorIs(t, err, repositories.ErrDuplicate)

			_, _, err = svc.Login(ctx, "landlord", "wrong")
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			_, _, err = svc.Login(ctx, "nobody", "hunter2")
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			token, got, err := svc.Login(ctx, "landlord", "hunter2")
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.ID, svc.Identity(token))

			svc.Logout(token)
			assert.Empty(t, svc.Identity(token))
		})
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	svc := NewService(memoryUsers())
	_, err := svc.Register(context.Background(), " ", "a@b.c", "pw")
	assert.ErrorIs(t, err, repositories.ErrInvalid)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(memoryUsers())
	_, err := svc.Register(context.Background(), "landlord", "l@example.com", "pw")
	require.NoError(t, err)
	token, user, err := svc.Login(context.Background(), "landlord", "pw")
	require.NoError(t, err)

	r := gin.New()
	r.Use(svc.Middleware())
	r.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })

	cases := map[string]struct {
		header, query, want string
	}{
		"bearer":  {header: "Bearer " + token, want: user.ID},
		"query":   {query: "?token=" + token, want: user.ID},
		"unknown": {header: "Bearer nope", want: ""},
		"none":    {want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

package middleware

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/fantasy-league/models"
)

func TestGetUserIDFromContext(t *testing.T) {
	t.Run("float64 claim", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), jwt.MapClaims{"user_id": float64(42)})
		id, err := GetUserIDFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("string claim", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), jwt.MapClaims{"user_id": "7"})
		id, err := GetUserIDFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("missing claims", func(t *testing.T) {
		_, err := GetUserIDFromContext(context.Background())
		assert.Error(t, err)
	})

	t.Run("non-integer value", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), jwt.MapClaims{"user_id": 12.5})
		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
	})

	t.Run("non-positive id", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), jwt.MapClaims{"user_id": float64(0)})
		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestGetUserRoleFromContext(t *testing.T) {
	t.Run("admin role", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), jwt.MapClaims{"role": "admin"})
		role, err := GetUserRoleFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)
	})

	t.Run("missing role claim", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), jwt.MapClaims{})
		_, err := GetUserRoleFromContext(ctx)
		assert.Error(t, err)
	})
}

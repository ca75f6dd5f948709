package websocket

import (
	"context"
	"strconv"
	"testing"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	"mentorship-system/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceFromLocalConnections(t *testing.T) {
	m := NewManager()
	p := NewPresence(m)
	ctx := context.Background()
	m.AddClient(newClient(model.RoleMentor, 42, 1))

	assert.True(t, p.IsOnline(ctx, model.RoleMentor, 42))
	assert.False(t, p.IsOnline(ctx, model.RoleUser, 42))
	n, err := p.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPresenceFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	require.NoError(t, redis.InitRedis(config.RedisConfig{Host: mr.Host(), Port: port}))
	t.Cleanup(func() { _ = redis.Close() })

	// 其它实例上的连接只记录在Redis中
	p := NewPresence(NewManager())
	ctx := context.Background()
	require.NoError(t, redis.SetPresence(ctx, ClientKey(model.RoleMentor, 42)))
	require.NoError(t, redis.SetPresence(ctx, ClientKey(model.RoleUser, 1)))

	assert.True(t, p.IsOnline(ctx, model.RoleMentor, 42))
	assert.False(t, p.IsOnline(ctx, model.RoleMentor, 43))
	n, err := p.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, redis.RemovePresence(ctx, ClientKey(model.RoleUser, 1)))
	n, err = p.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

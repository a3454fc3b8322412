// Package redistest 用 miniredis 替换全局客户端
package redistest

import (
	"DigitalOrganisms/internal/pkg/redis"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

// Setup 启动 miniredis 并指向 redis.Rdb，测试结束恢复原客户端
func Setup(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)

	previous := redis.Rdb
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = previous
	})
	return mr
}

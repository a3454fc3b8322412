package logger

import (
	"DigitalOrganisms/internal/pkg/consts"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	slowRedisThreshold = 100 * time.Millisecond
	protected          = "[PROTECTED]"
)

// RedisLoggerHook 只记录失败与慢命令
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				"addr", addr,
				"latency", time.Since(start),
				"err", err,
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		s.report(ctx, "Redis", time.Since(start), err,
			"command", cmd.Name(),
			"args", redactArgs(cmd),
		)
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		s.report(ctx, "Redis Pipeline", time.Since(start), err, "cmd_count", len(cmds))
		return err
	}
}

func (s *RedisLoggerHook) report(ctx context.Context, prefix string, elapsed time.Duration, err error, attrs ...any) {
	attrs = append(attrs, "latency", elapsed)
	switch {
	case err != nil && !ignorableRedisErr(err):
		log.ErrorContext(ctx, prefix+" Error", append(attrs, "err", err)...)
	case err == nil && elapsed > slowRedisThreshold:
		log.WarnContext(ctx, prefix+" Slow", attrs...)
	}
}

// ignorableRedisErr 缓存未命中与旧版本服务端不支持 CLIENT SETINFO 不算错误
func ignorableRedisErr(err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	msg := err.Error()
	return msg == "ERR no such key" || strings.Contains(msg, "setinfo")
}

// redactArgs 认证命令与含 token 签名的黑名单 key 不落日志
func redactArgs(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return protected
	}
	args := fmt.Sprint(cmd.Args())
	if strings.Contains(args, consts.TokenBlacklistKey) {
		return protected
	}
	return args
}

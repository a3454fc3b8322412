package probe

import (
	"DigitalOrganisms/internal/pkg/consts"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const healthPath = "/health"

// Prober 对集成的健康检查地址发起一次探测，返回健康状态
type Prober interface {
	Probe(ctx context.Context, endpoint string) (string, error)
}

type httpProber struct {
	client *resty.Client
}

func NewHTTPProber(timeout time.Duration) Prober {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "DigitalOrganisms-HealthProbe/1.0").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))
	return &httpProber{client: client}
}

// Probe 200 视为 healthy，其余状态码为 warning，超时或连接失败为 error
func (s *httpProber) Probe(ctx context.Context, endpoint string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(HealthURL(endpoint))
	if err != nil {
		return consts.HealthStatusError, err
	}
	if resp.StatusCode() == http.StatusOK {
		return consts.HealthStatusHealthy, nil
	}
	return consts.HealthStatusWarning, nil
}

func HealthURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + healthPath
}

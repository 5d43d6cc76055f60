package content

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// gatewayFetcher performs a single GET against <base>/<cid>.
type gatewayFetcher struct {
	base   string
	client *http.Client
	log    *zap.Logger
}

// NewGateway creates a Fetcher backed by an HTTP content gateway such as an IPFS gateway.
func NewGateway(baseURL string, timeout time.Duration, log *zap.Logger) Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &gatewayFetcher{
		base: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

func (g *gatewayFetcher) Fetch(ctx context.Context, cid string) (string, bool) {
	u := g.base + "/" + url.PathEscape(cid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		g.log.Warn("failed to build gateway request", zap.String("url", u), zap.Error(err))
		return "", false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("failed to fetch content", zap.String("url", u), zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn("non-200 from content gateway", zap.String("url", u), zap.Int("status", resp.StatusCode))
		return "", false
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		g.log.Warn("failed to read content body", zap.String("url", u), zap.Error(err))
		return "", false
	}
	return string(b), true
}

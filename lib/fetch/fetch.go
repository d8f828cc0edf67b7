package fetch

import (
	"context"
	"fmt"
	"time"
	"concurseiro-backend/lib/restyutil"
	"concurseiro-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// StatusError reports a response outside the 2xx range. Callers are
// expected to skip the page and continue with the rest of the batch.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// headers sent with every request to look like a regular browser;
// source sites block obvious bots
var browserHeaders = map[string]string{
	"user-agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"accept-language": "pt-BR,pt;q=0.9,en;q=0.8",
	"accept-encoding": "gzip, deflate, br",
}

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// per-request timeout, defaults to 30s
	Timeout time.Duration
	// optional request/response dump destination for debugging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetHeaders(browserHeaders)
	client.SetTimeout(timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "lib/fetch")
	restyutil.InstrumentClient(client, opts.InstrumentOutput)

	return &Client{Http: client}
}

// Get fetches one page and returns its raw body. cacheHintSeconds is
// advisory: when positive it is forwarded as a max-age hint to any
// fronting cache, it does not change the client's own behavior.
func (c *Client) Get(ctx context.Context, url string, cacheHintSeconds int) ([]byte, error) {
	req := c.Http.R().SetContext(ctx)
	if cacheHintSeconds > 0 {
		req.SetHeader("cache-control", fmt.Sprintf("max-age=%d", cacheHintSeconds))
	}

	res, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode()}
	}

	return res.Body(), nil
}

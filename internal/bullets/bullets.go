package bullets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yulei/news-hub/internal/feed"
)

const (
	maxResponseBytes = 256 * 1024
	clientTimeout    = 30 * time.Second
)

// ErrDisabled 未配置摘要服务地址
var ErrDisabled = errors.New("bullets: endpoint not configured")

// Client 调用用户自行配置的要点摘要服务。纯透传：把条目的标题、摘要、
// 链接和语言发过去，把对方返回的要点列表原样交给前端。
// 未配置地址时整个功能静默关闭，这是默认状态
type Client struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: clientTimeout},
	}
}

func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

type summarizeRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Lang    string `json:"lang"`
}

// Summarize 请求摘要服务，兼容 {bullets:[...]} 与 {text:"..."} 两种返回，
// 后者按换行拆成要点
func (c *Client) Summarize(ctx context.Context, it feed.Item) ([]string, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	body, err := json.Marshal(summarizeRequest{
		Title:   it.Title,
		Summary: it.Summary,
		URL:     it.Link,
		Lang:    it.Lang,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bullets: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bullets: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Bullets []string `json:"bullets"`
		Text    string   `json:"text"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("bullets: decode: %w", err)
	}

	lines := out.Bullets
	if len(lines) == 0 {
		lines = strings.Split(out.Text, "\n")
	}

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return cleaned, nil
}

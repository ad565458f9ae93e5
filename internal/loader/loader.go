package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yulei/news-hub/internal/feed"
)

const (
	maxResponseBytes = 8 << 20 // 8MB，条目文档可能有数千条
	clientTimeout    = 20 * time.Second
)

// Loader 从流水线产出的静态数据地址拉取三份 JSON 文档并构建快照
type Loader struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Loader {
	return &Loader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: clientTimeout},
	}
}

// Load 拉取 items/topics/meta 并组装快照。
// items.json 不可用即整体失败；topics/meta 任一不可用时降级为空值继续，
// 只影响热度排序与页脚元信息，不阻塞出图
func (l *Loader) Load(ctx context.Context) (*feed.Snapshot, error) {
	var items []feed.Item
	if err := l.fetchJSON(ctx, "items.json", &items); err != nil {
		return nil, fmt.Errorf("loader: fetch items: %w", err)
	}

	var topics []feed.Topic
	if err := l.fetchJSON(ctx, "topics.json", &topics); err != nil {
		log.Printf("warn: loader: topics unavailable, treating as empty: %v", err)
		topics = nil
	}

	var meta *feed.Meta
	var m feed.Meta
	if err := l.fetchJSON(ctx, "meta.json", &m); err != nil {
		log.Printf("warn: loader: meta unavailable: %v", err)
	} else {
		meta = &m
	}

	return feed.NewSnapshot(items, topics, meta), nil
}

func (l *Loader) fetchJSON(ctx context.Context, name string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+name, nil)
	if err != nil {
		return err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

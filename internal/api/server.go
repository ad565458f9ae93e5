package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yulei/news-hub/internal/bullets"
	"github.com/yulei/news-hub/internal/feed"
	"github.com/yulei/news-hub/internal/storage"
	"github.com/yulei/news-hub/internal/userstate"
	"github.com/yulei/news-hub/internal/view"
)

// SnapshotSource 提供当前数据快照；首份数据未就绪时返回 nil
type SnapshotSource interface {
	Snapshot() *feed.Snapshot
}

type Server struct {
	snapshots SnapshotSource
	prefs     *userstate.PrefStore
	read      *userstate.SetStore
	star      *userstate.SetStore
	store     *storage.Store // 可为 nil：未配置归档库
	bullets   *bullets.Client
}

func NewServer(snapshots SnapshotSource, prefs *userstate.PrefStore, read, star *userstate.SetStore, store *storage.Store, b *bullets.Client) *Server {
	return &Server{
		snapshots: snapshots,
		prefs:     prefs,
		read:      read,
		star:      star,
		store:     store,
		bullets:   b,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/feed", s.getFeed)
		v1.GET("/meta", s.getMeta)
		v1.GET("/prefs", s.getPrefs)
		v1.PUT("/prefs", s.putPrefs)
		v1.POST("/read/toggle", s.toggleRead)
		v1.POST("/star/toggle", s.toggleStar)
		v1.POST("/summarize", s.summarize)
		v1.GET("/archive", s.getArchive)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// feedEntry 在条目外附上当前用户的已读/收藏标记，前端一次请求出整页
type feedEntry struct {
	feed.Item
	Read    bool `json:"read"`
	Starred bool `json:"starred"`
}

func (s *Server) getFeed(c *gin.Context) {
	snap := s.snapshots.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "data_unavailable",
			"message": "news data not loaded yet",
		})
		return
	}

	ctx := c.Request.Context()
	p := s.prefs.Load(ctx)
	applyQueryOverrides(&p, c)

	read := s.read.Load(ctx)
	star := s.star.Load(ctx)

	v := view.Build(snap, p, read, star)

	entries := make([]feedEntry, 0, len(v.Items))
	for _, it := range v.Items {
		entries = append(entries, feedEntry{Item: it, Read: read[it.ID], Starred: star[it.ID]})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"items":     entries,
			"countText": v.CountText,
		},
	})
}

// applyQueryOverrides 用请求参数覆盖已存偏好。覆盖只影响本次请求，
// 不落盘；搜索词 q 本来就不持久化
func applyQueryOverrides(p *view.Preferences, c *gin.Context) {
	p.Query = c.Query("q")
	if v := c.Query("category"); v != "" {
		p.Category = v
	}
	if v := c.Query("region"); v != "" {
		p.Region = v
	}
	if v := c.Query("sort"); v != "" {
		p.Sort = v
	}
	if v := c.Query("unread"); v != "" {
		p.OnlyUnread = v == "1" || v == "true"
	}
	if v := c.Query("star"); v != "" {
		p.OnlyStar = v == "1" || v == "true"
	}
}

func (s *Server) getMeta(c *gin.Context) {
	snap := s.snapshots.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "data_unavailable",
			"message": "news data not loaded yet",
		})
		return
	}

	data := gin.H{
		"loadedAt":     snap.LoadedAt,
		"countItems":   len(snap.Items),
		"countTopics":  len(snap.Topics),
		"failureCount": snap.Meta.FailureCount(),
	}
	if snap.Meta != nil {
		data["generatedAt"] = snap.Meta.GeneratedAt
	}

	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": data})
}

func (s *Server) getPrefs(c *gin.Context) {
	p := s.prefs.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": p})
}

func (s *Server) putPrefs(c *gin.Context) {
	ctx := c.Request.Context()

	// 在已存偏好上做部分更新：请求里没给的字段保持原值
	p := s.prefs.Load(ctx)
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "invalid preferences payload",
		})
		return
	}

	if err := s.prefs.Save(ctx, p); err != nil {
		log.Printf("save prefs error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": p.Normalize()})
}

func (s *Server) toggleRead(c *gin.Context) {
	s.toggle(c, s.read, "read")
}

func (s *Server) toggleStar(c *gin.Context) {
	s.toggle(c, s.star, "starred")
}

func (s *Server) toggle(c *gin.Context, store *userstate.SetStore, field string) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "id is required",
		})
		return
	}

	set, err := store.Toggle(c.Request.Context(), req.ID)
	if err != nil {
		log.Printf("toggle %s error: %v", field, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    gin.H{"id": req.ID, field: set[req.ID]},
	})
}

func (s *Server) summarize(c *gin.Context) {
	if !s.bullets.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "disabled",
			"message": "summarize endpoint not configured",
		})
		return
	}

	snap := s.snapshots.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "data_unavailable",
			"message": "news data not loaded yet",
		})
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "id is required",
		})
		return
	}

	var target *feed.Item
	for i := range snap.Items {
		if snap.Items[i].ID == req.ID {
			target = &snap.Items[i]
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "item not found",
		})
		return
	}

	lines, err := s.bullets.Summarize(c.Request.Context(), *target)
	if err != nil {
		// 摘要服务是外围能力，失败降级为空结果而不是报错页
		log.Printf("warn: summarize %s: %v", req.ID, err)
		c.JSON(http.StatusOK, gin.H{
			"code":    "ok",
			"message": "success",
			"data":    gin.H{"id": req.ID, "bullets": []string{}},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    gin.H{"id": req.ID, "bullets": lines},
	})
}

func (s *Server) getArchive(c *gin.Context) {
	if s.store == nil || !s.store.Archiving() {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "disabled",
			"message": "archive not configured",
		})
		return
	}

	region := c.Query("region")
	sort := c.DefaultQuery("sort", "latest")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	items, err := s.store.ListArchived(region, sort, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": items})
}

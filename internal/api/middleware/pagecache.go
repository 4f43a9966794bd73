package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/pkg/pagecache"
)

type snapshotWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *snapshotWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *snapshotWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache 按请求路径缓存整页渲染结果，TTL 内命中直接回放。
// 时间过期，无失效逻辑；窗口内的陈旧读是接受的产品行为。
// 仅用于对所有人渲染一致的公共页。
func PageCache(cache pagecache.Cache, ttl time.Duration) gin.HandlerFunc {
	return cachePage(cache, ttl, func(c *gin.Context) string {
		// query 参与键值，不同页码各自缓存
		return c.Request.URL.RequestURI()
	})
}

// PageCachePerUser 同 PageCache，但键值带上当前用户 ID，
// 个性化页面各用户独立缓存，绝不互相串页。匿名请求不缓存。
func PageCachePerUser(cache pagecache.Cache, ttl time.Duration) gin.HandlerFunc {
	return cachePage(cache, ttl, func(c *gin.Context) string {
		u := UserFrom(c)
		if u == nil {
			return ""
		}
		return "u:" + u.ID + ":" + c.Request.URL.RequestURI()
	})
}

func cachePage(cache pagecache.Cache, ttl time.Duration, keyOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := keyOf(c)
		if key == "" {
			c.Next()
			return
		}
		if snap, ok := cache.Get(c.Request.Context(), key); ok {
			c.Data(http.StatusOK, snap.ContentType, snap.Body)
			c.Abort()
			return
		}

		w := &snapshotWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() == http.StatusOK && w.buf.Len() > 0 {
			cache.Set(c.Request.Context(), key, &pagecache.Snapshot{
				ContentType: w.Header().Get("Content-Type"),
				Body:        append([]byte(nil), w.buf.Bytes()...),
			}, ttl)
		}
	}
}

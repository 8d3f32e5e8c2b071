// Package gin serves the mirrored blog over HTTP using gin.
package gin

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/blogmirror"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// DefaultPageSize is the number of articles shown per list page.
const DefaultPageSize = 20

// HomeCategoryID is the category listed on the home page. On the blog it
// holds every post.
const HomeCategoryID = "0"

// Server serves the mirrored blog.
type Server struct {
	Categories blogmirror.CategoryService
	Articles   blogmirror.ArticleService
	Converter  blogmirror.Converter
	Logger     *slog.Logger
	PageSize   int

	engine *gin.Engine
}

// NewServer creates a Server with all routes configured.
func NewServer(categories blogmirror.CategoryService, articles blogmirror.ArticleService, converter blogmirror.Converter, logger *slog.Logger) *Server {
	s := &Server{
		Categories: categories,
		Articles:   articles,
		Converter:  converter,
		Logger:     logger,
		PageSize:   DefaultPageSize,
	}

	r := gin.New()
	// Match on the escaped path so tags containing "/" stay one segment.
	r.UseRawPath = true
	r.Use(s.logRequests(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	r.GET("/", s.handleHome)
	r.GET("/article/:id", s.handleArticle)
	r.GET("/article/:id/markdown", s.handleArticleMarkdown)
	r.GET("/category/:id", s.handleCategory)
	r.GET("/tag/:tag", s.handleTag)
	r.GET("/categories", s.handleCategories)
	r.GET("/health", s.handleHealth)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	s.engine = r
	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.Logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
			"client", c.ClientIP(),
		)
	}
}

var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	// Post bodies are the blog's own markup and are rendered as-is.
	"rawHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"tagPath": tagPath,
	"inc":     func(n int) int { return n + 1 },
	"dec":     func(n int) int { return n - 1 },
}

// tagPath returns the escaped path of a tag's article list.
func tagPath(tag string) string {
	return "/tag/" + url.PathEscape(tag)
}

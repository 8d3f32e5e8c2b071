package gin

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/blogmirror"
	"github.com/gin-gonic/gin"
)

// listPage is the view model of a paginated article list.
type listPage struct {
	Title    string
	Articles []*blogmirror.Article
	Page     int
	HasPrev  bool
	HasNext  bool
	Total    int
	BasePath string
}

func (s *Server) handleHome(c *gin.Context) {
	categoryID := HomeCategoryID
	articles, err := s.Articles.FindArticles(c.Request.Context(), blogmirror.ArticleFilter{
		CategoryID: &categoryID,
		Limit:      s.PageSize,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Articles": articles})
}

func (s *Server) handleArticle(c *gin.Context) {
	article, err := s.Articles.FindArticleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	if article.ContentHash != "" {
		etag := `"` + article.ContentHash + `"`
		c.Header("ETag", etag)
		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}
	c.HTML(http.StatusOK, "article.html", gin.H{"Article": article})
}

func (s *Server) handleArticleMarkdown(c *gin.Context) {
	article, err := s.Articles.FindArticleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	if article.Content == "" {
		s.renderError(c, blogmirror.Errorf(blogmirror.ENOTFOUND, "article %s has not been mirrored yet", article.ID))
		return
	}

	md, err := s.Converter.Convert(article.Content)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Header("ETag", `"`+article.ContentHash+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte("# "+article.Title+"\n\n"+md+"\n"))
}

func (s *Server) handleCategory(c *gin.Context) {
	ctx := c.Request.Context()
	category, err := s.Categories.FindCategoryByID(ctx, c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	page := pageParam(c)
	articles, err := s.Articles.FindArticles(ctx, blogmirror.ArticleFilter{
		CategoryID: &category.ID,
		Offset:     (page - 1) * s.PageSize,
		Limit:      s.PageSize,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "list.html", s.newListPage(category.Name, "/category/"+category.ID, page, category.PostCount, articles))
}

func (s *Server) handleTag(c *gin.Context) {
	ctx := c.Request.Context()
	tag := c.Param("tag")

	total, err := s.Articles.CountArticlesByTag(ctx, tag)
	if err != nil {
		s.renderError(c, err)
		return
	}

	page := pageParam(c)
	articles, err := s.Articles.FindArticles(ctx, blogmirror.ArticleFilter{
		Tag:    &tag,
		Offset: (page - 1) * s.PageSize,
		Limit:  s.PageSize,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "list.html", s.newListPage("Tag: "+tag, tagPath(tag), page, total, articles))
}

func (s *Server) handleCategories(c *gin.Context) {
	categories, err := s.Categories.FindCategories(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "categories.html", gin.H{"Categories": categories})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) newListPage(title, basePath string, page, total int, articles []*blogmirror.Article) listPage {
	return listPage{
		Title:    title,
		Articles: articles,
		Page:     page,
		HasPrev:  page > 1,
		HasNext:  page*s.PageSize < total,
		Total:    total,
		BasePath: basePath,
	}
}

// pageParam returns the 1-based page query parameter. Missing or invalid
// values mean the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// renderError writes an error page. Internal error details are logged but
// not shown to the client.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch blogmirror.ErrorCode(err) {
	case blogmirror.ENOTFOUND:
		status, message = http.StatusNotFound, blogmirror.ErrorMessage(err)
	case blogmirror.EINVALID:
		status, message = http.StatusBadRequest, blogmirror.ErrorMessage(err)
	default:
		s.Logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.HTML(status, "error.html", gin.H{"Status": status, "Message": message})
}

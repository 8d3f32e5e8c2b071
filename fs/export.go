// Package fs exports mirrored articles as markdown files.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/blogmirror"
	"gopkg.in/yaml.v3"
)

// Ensure ExportStore implements blogmirror.ArticleExporter at compile time.
var _ blogmirror.ArticleExporter = (*ExportStore)(nil)

// frontMatter is the YAML header written above each exported article.
type frontMatter struct {
	Title    string   `yaml:"title"`
	Source   string   `yaml:"source"`
	Category string   `yaml:"category"`
	Created  string   `yaml:"created,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Hash     string   `yaml:"hash,omitempty"`
}

// ArticlePath returns the path of an exported article relative to the
// export root: <category>/<id>.md
func ArticlePath(article *blogmirror.Article) (string, error) {
	for _, part := range []string{article.CategoryID, article.ID} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", blogmirror.Errorf(blogmirror.EINVALID, "cannot export article %q in category %q", article.ID, article.CategoryID)
		}
	}
	return filepath.Join(article.CategoryID, article.ID+".md"), nil
}

// FormatArticle renders an article as markdown with YAML frontmatter.
func FormatArticle(article *blogmirror.Article, markdown string) (string, error) {
	fm := frontMatter{
		Title:    article.Title,
		Source:   article.URL,
		Category: article.CategoryID,
		Tags:     article.Tags,
		Hash:     article.ContentHash,
	}
	if !article.CreatedTime.IsZero() {
		fm.Created = article.CreatedTime.UTC().Format(time.RFC3339)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EINTERNAL, err, "encode frontmatter for %s", article.ID)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")
	return b.String(), nil
}

// ExportStore writes articles into a temporary directory and swaps it
// into place on Commit, so readers never see a half-written export.
type ExportStore struct {
	baseDir string
	name    string
}

// NewExportStore creates an ExportStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExportStore(baseDir, name string) *ExportStore {
	return &ExportStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one article into the pending export.
func (s *ExportStore) Save(ctx context.Context, article *blogmirror.Article, markdown string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := ArticlePath(article)
	if err != nil {
		return err
	}
	content, err := FormatArticle(article, markdown)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return blogmirror.WrapError(blogmirror.ESTORAGE, err, "create export directory")
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return blogmirror.WrapError(blogmirror.ESTORAGE, err, "write %s", relPath)
	}
	return nil
}

// Commit replaces the previous export with the pending one.
func (s *ExportStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return blogmirror.WrapError(blogmirror.ESTORAGE, err, "create export directory")
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return blogmirror.WrapError(blogmirror.ESTORAGE, err, "remove previous export")
	}
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return blogmirror.WrapError(blogmirror.ESTORAGE, err, "publish export")
	}
	return nil
}

// Abort discards the pending export.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

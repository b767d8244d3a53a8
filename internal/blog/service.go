package blog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/marcus/aba-directory/internal/db"
	"github.com/marcus/aba-directory/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	excerptMaxLen    = 160
	relatedPostLimit = 3
)

// Service wraps the blog store with validation, sanitization, and derived
// fields (slug, excerpt).
type Service struct {
	store    db.BlogStore
	sanitize *bluemonday.Policy
}

func NewService(store db.BlogStore) *Service {
	return &Service{
		store:    store,
		sanitize: bluemonday.UGCPolicy(),
	}
}

// CreateInput is the writable surface of a post. Content is rich text and is
// sanitized before storage.
type CreateInput struct {
	Title    string `json:"title" validate:"required,min=3"`
	Content  string `json:"content" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	Excerpt  *string `json:"excerpt"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
}

func (s *Service) List(ctx context.Context) ([]models.BlogPost, error) {
	return s.store.List(ctx)
}

// GetBySlug returns the post plus up to three related posts sharing its
// category (excluding the post itself).
func (s *Service) GetBySlug(ctx context.Context, slug string) (models.BlogPost, []models.BlogPost, error) {
	post, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return models.BlogPost{}, nil, err
	}

	var related []models.BlogPost
	if post.Category != "" {
		all, err := s.store.List(ctx)
		if err == nil {
			for _, candidate := range all {
				if candidate.ID == post.ID || candidate.Category != post.Category {
					continue
				}
				related = append(related, candidate)
				if len(related) == relatedPostLimit {
					break
				}
			}
		}
	}

	return post, related, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (models.BlogPost, error) {
	now := time.Now().UTC()

	content := s.sanitize.Sanitize(in.Content)
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	} else {
		slug = Slugify(slug)
	}
	if slug == "" {
		return models.BlogPost{}, fmt.Errorf("title %q yields an empty slug", in.Title)
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = DeriveExcerpt(content)
	}

	post := models.BlogPost{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Slug:      slug,
		Excerpt:   excerpt,
		Content:   content,
		Author:    strings.TrimSpace(in.Author),
		Date:      now,
		Category:  strings.TrimSpace(in.Category),
		Image:     strings.TrimSpace(in.Image),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, post); err != nil {
		return models.BlogPost{}, err
	}
	return post, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (models.BlogPost, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.BlogPost{}, err
	}

	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		post.Content = s.sanitize.Sanitize(*in.Content)
	}
	if in.Author != nil {
		post.Author = strings.TrimSpace(*in.Author)
	}
	if in.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Category != nil {
		post.Category = strings.TrimSpace(*in.Category)
	}
	if in.Image != nil {
		post.Image = strings.TrimSpace(*in.Image)
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, post); err != nil {
		return models.BlogPost{}, err
	}
	return post, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers, strips non-alphanumerics to hyphens, and trims.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// DeriveExcerpt converts HTML to plain text and cuts it to the excerpt
// length, appending an ellipsis when truncated.
func DeriveExcerpt(html string) string {
	text := htmlToText(html)
	if len(text) <= excerptMaxLen {
		return text
	}
	cut := text[:excerptMaxLen-3]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// htmlToText converts HTML to plain text, collapsing whitespace. Falls back
// to the raw input if parsing fails.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

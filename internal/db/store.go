package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marcus/aba-directory/internal/models"
)

// ProviderStore is the persistence collaborator for the provider snapshot.
// The backing implementation (Postgres or flat file) is swappable and
// irrelevant to the directory core, which only ever sees a loaded snapshot.
type ProviderStore interface {
	LoadAll(ctx context.Context) ([]models.Provider, error)
	ReplaceAll(ctx context.Context, providers []models.Provider) error
}

// BlogStore is the persistence collaborator for blog posts. CRUD only.
type BlogStore interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (models.BlogPost, error)
	GetByID(ctx context.Context, id string) (models.BlogPost, error)
	Create(ctx context.Context, post models.BlogPost) error
	Update(ctx context.Context, post models.BlogPost) error
	Delete(ctx context.Context, id string) error
}

// Store is the Postgres-backed implementation of both collaborators.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const providerCols = `id, name, county, city, address, phone, email, website, description,
	services, certifications, insurance_accepted, age_groups,
	rating, rank, years_experience, extra`

func scanProvider(scan func(dest ...interface{}) error) (models.Provider, error) {
	var p models.Provider
	var extraRaw []byte

	err := scan(
		&p.ID, &p.Name, &p.County, &p.City, &p.Address, &p.Phone, &p.Email, &p.Website, &p.Description,
		&p.Services, &p.Certifications, &p.InsuranceAccepted, &p.AgeGroups,
		&p.Rating, &p.Rank, &p.YearsExperience, &extraRaw,
	)
	if err != nil {
		return p, err
	}

	if len(extraRaw) > 0 {
		_ = json.Unmarshal(extraRaw, &p.Extra)
	}

	return p, nil
}

func (s *Store) LoadAll(ctx context.Context) ([]models.Provider, error) {
	query := fmt.Sprintf("SELECT %s FROM providers ORDER BY position, id", providerCols)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		p, err := scanProvider(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// ReplaceAll swaps the stored snapshot wholesale inside one transaction. No
// merge semantics, matching the repository's bulk-replace contract.
func (s *Store) ReplaceAll(ctx context.Context, providers []models.Provider) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM providers"); err != nil {
		return fmt.Errorf("failed to clear providers: %w", err)
	}

	for i, p := range providers {
		extra, err := json.Marshal(p.Extra)
		if err != nil {
			extra = []byte("{}")
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO providers (%s, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`, providerCols),
			p.ID, p.Name, p.County, p.City, p.Address, p.Phone, p.Email, p.Website, p.Description,
			p.Services, p.Certifications, p.InsuranceAccepted, p.AgeGroups,
			p.Rating, p.Rank, p.YearsExperience, extra, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert provider %s: %w", p.ID, err)
		}
	}

	return tx.Commit(ctx)
}

const postCols = `id, title, slug, excerpt, content, author, date, category, image, created_at, updated_at`

func scanPost(scan func(dest ...interface{}) error) (models.BlogPost, error) {
	var post models.BlogPost
	err := scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
		&post.Author, &post.Date, &post.Category, &post.Image,
		&post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

func (s *Store) List(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM posts ORDER BY date DESC", postCols))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM posts WHERE slug = $1", postCols), slug)
	post, err := scanPost(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.BlogPost{}, ErrNotFound
	}
	return post, err
}

func (s *Store) GetByID(ctx context.Context, id string) (models.BlogPost, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM posts WHERE id = $1", postCols), id)
	post, err := scanPost(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.BlogPost{}, ErrNotFound
	}
	return post, err
}

func (s *Store) Create(ctx context.Context, post models.BlogPost) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO posts (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, postCols),
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.Author, post.Date, post.Category, post.Image,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, post models.BlogPost) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE posts SET title=$2, slug=$3, excerpt=$4, content=$5, author=$6,
			date=$7, category=$8, image=$9, updated_at=$10
		WHERE id=$1`,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.Author, post.Date, post.Category, post.Image, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM posts WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

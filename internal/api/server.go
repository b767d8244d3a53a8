package api

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math"
	mathrand "math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/marcus/aba-directory/internal/blog"
	"github.com/marcus/aba-directory/internal/db"
	"github.com/marcus/aba-directory/internal/directory"
	"github.com/marcus/aba-directory/internal/mailer"
	"github.com/marcus/aba-directory/internal/upload"
	"go.uber.org/zap"
)

// featuredDefaultCount is the landing-page sample size (the pinned provider
// comes on top of it).
const featuredDefaultCount = 4

type Server struct {
	Echo    *echo.Echo
	Repo    *directory.Repository
	Store   db.ProviderStore
	Blog    *blog.Service
	Mailer  *mailer.Client
	Uploads *upload.Saver

	logger *zap.Logger

	// rng feeds the featured-set shuffle; injected so tests can fix the
	// seed. rand.Rand is not goroutine-safe, hence the mutex.
	rngMu sync.Mutex
	rng   *mathrand.Rand
}

func NewServer(
	repo *directory.Repository,
	store db.ProviderStore,
	blogSvc *blog.Service,
	mailClient *mailer.Client,
	uploads *upload.Saver,
	rng *mathrand.Rand,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	allowedOrigins := []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Admin-Secret"},
	}))

	s := &Server{
		Echo:    e,
		Repo:    repo,
		Store:   store,
		Blog:    blogSvc,
		Mailer:  mailClient,
		Uploads: uploads,
		logger:  logger,
		rng:     rng,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.GET("/providers", s.handleListProviders)
	api.GET("/providers/directory", s.handleDirectory)
	api.GET("/providers/featured", s.handleFeatured)
	api.GET("/providers/:id", s.handleGetProvider)
	api.GET("/counties", s.handleListCounties)

	api.POST("/estimate", s.handleEstimate)
	api.GET("/quiz", s.handleQuizQuestions)
	api.POST("/quiz", s.handleQuizSubmit)
	api.POST("/subscribe", s.handleSubscribe)

	api.GET("/posts", s.handleListPosts)
	api.GET("/posts/:slug", s.handleGetPost)

	admin := api.Group("/admin")
	admin.Use(s.adminMiddleware)
	admin.POST("/import", s.handleImport)
	admin.PATCH("/providers/:id/rank", s.handleUpdateRank)
	admin.POST("/posts", s.handleCreatePost)
	admin.PATCH("/posts/:id", s.handleUpdatePost)
	admin.DELETE("/posts/:id", s.handleDeletePost)
	admin.POST("/upload", s.handleUpload)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// splitCSV splits a comma-separated query parameter into trimmed non-empty
// strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func filterSpecFromQuery(c echo.Context) directory.FilterSpec {
	spec := directory.FilterSpec{
		Insurance:      splitCSV(c.QueryParam("insurance")),
		Services:       splitCSV(c.QueryParam("services")),
		AgeGroups:      splitCSV(c.QueryParam("ageGroups")),
		Certifications: splitCSV(c.QueryParam("certifications")),
	}
	// Bad numeric params fall back to "no constraint"; list endpoints never
	// fail on input.
	if v, err := strconv.ParseFloat(c.QueryParam("minRating"), 64); err == nil && v > 0 && !math.IsNaN(v) {
		spec.MinRating = v
	}
	if v, err := strconv.Atoi(c.QueryParam("minExperience")); err == nil && v > 0 {
		spec.MinExperience = v
	}
	return spec
}

func (s *Server) handleListProviders(c echo.Context) error {
	providers := directory.Filter(s.Repo.GetAll(), filterSpecFromQuery(c))

	sortKey := c.QueryParam("sort")
	if sortKey == "" {
		sortKey = directory.SortRecommended
	}
	providers = directory.Sort(providers, sortKey)

	if county := strings.TrimSpace(c.QueryParam("county")); county != "" {
		wanted, ok := directory.Normalize(county)
		if !ok {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"providers": []interface{}{}, "total": 0,
			})
		}
		kept := providers[:0]
		for _, p := range providers {
			if got, ok := directory.Normalize(p.County); ok && got == wanted {
				kept = append(kept, p)
			}
		}
		providers = kept
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers": providers,
		"total":     len(providers),
	})
}

func (s *Server) handleDirectory(c echo.Context) error {
	providers := directory.Filter(s.Repo.GetAll(), filterSpecFromQuery(c))

	sortKey := c.QueryParam("sort")
	if sortKey == "" {
		sortKey = directory.SortRecommended
	}
	providers = directory.Sort(providers, sortKey)

	groups := directory.TruncateGroups(directory.GroupByCounty(providers))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"counties": groups,
		"limit":    directory.DirectoryGroupLimit,
	})
}

func (s *Server) handleFeatured(c echo.Context) error {
	count := featuredDefaultCount
	if v, err := strconv.Atoi(c.QueryParam("count")); err == nil && v > 0 && v <= 20 {
		count = v
	}

	s.rngMu.Lock()
	featured := directory.SelectFeatured(s.Repo.GetAll(), directory.PinnedNameSubstring, count, s.rng)
	s.rngMu.Unlock()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers": featured,
	})
}

func (s *Server) handleGetProvider(c echo.Context) error {
	p, ok := s.Repo.GetByID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// handleListCounties returns the canonical counties actually represented in
// the data, in canonical order. This drives the filter dropdown.
func (s *Server) handleListCounties(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"counties": directory.ValidCounties(s.Repo.ListCounties()),
	})
}

// adminMiddleware guards mutating endpoints with a shared secret, supplied
// either as X-Admin-Secret or a Bearer token.
func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") && authHeader[7:] == secret {
			return next(c)
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}
		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}
	return adminSecretRuntime, nil
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/marcus/aba-directory/internal/api"
	"github.com/marcus/aba-directory/internal/blog"
	"github.com/marcus/aba-directory/internal/db"
	"github.com/marcus/aba-directory/internal/directory"
	"github.com/marcus/aba-directory/internal/mailer"
	"github.com/marcus/aba-directory/internal/upload"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var (
		providerStore db.ProviderStore
		blogStore     db.BlogStore
	)

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		// Flat-file mode for local development and small deployments.
		fs := db.NewFileStore(dataDir, logger)
		providerStore, blogStore = fs, fs
		logger.Info("using file store", zap.String("dir", dataDir))
	} else {
		pool, err := db.Connect(ctx)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := db.ApplyMigrations(ctx, pool); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}

		store := db.NewStore(pool)
		providerStore, blogStore = store, store
		logger.Info("connected to postgres")
	}

	repo := directory.NewRepository()
	providers, err := providerStore.LoadAll(ctx)
	if err != nil {
		logger.Fatal("failed to load provider snapshot", zap.Error(err))
	}
	repo.ReplaceAll(providers)
	logger.Info("provider snapshot loaded", zap.Int("count", repo.Len()))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	srv := api.NewServer(
		repo,
		providerStore,
		blog.NewService(blogStore),
		mailer.NewClient(os.Getenv("MARKETING_API_URL"), os.Getenv("MARKETING_API_KEY"), logger),
		upload.NewSaver(uploadDir),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server", zap.String("port", port))
	if err := srv.Start(port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/marcus/aba-directory/internal/estimator"
	"github.com/marcus/aba-directory/internal/ingest"
	"github.com/marcus/aba-directory/internal/mailer"
	"github.com/marcus/aba-directory/internal/quiz"
	"go.uber.org/zap"
)

func (s *Server) handleEstimate(c echo.Context) error {
	var in estimator.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, estimator.Calculate(in))
}

func (s *Server) handleQuizQuestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"questions": quiz.Questions,
	})
}

type quizSubmission struct {
	Answers []int  `json:"answers" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Name    string `json:"name"`
}

func (s *Server) handleQuizSubmit(c echo.Context) error {
	var in quizSubmission
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	result := quiz.Score(in.Answers)

	// Leaving an email is the opt-in; the relay failing never blocks the
	// quiz result.
	if in.Email != "" {
		_ = s.Mailer.Subscribe(c.Request().Context(), mailer.Subscription{
			Email:  in.Email,
			Name:   strings.TrimSpace(in.Name),
			Source: "quiz",
		})
	}

	return c.JSON(http.StatusOK, result)
}

type subscribeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (s *Server) handleSubscribe(c echo.Context) error {
	var in subscribeRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "website"
	}

	err := s.Mailer.Subscribe(c.Request().Context(), mailer.Subscription{
		Email:  in.Email,
		Name:   strings.TrimSpace(in.Name),
		Source: source,
	})
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "subscribed"})
}

// handleImport accepts a provider spreadsheet as either a multipart CSV file
// (field "file") or a JSON body of raw rows, replaces the in-memory
// collection, and persists the new snapshot.
func (s *Server) handleImport(c echo.Context) error {
	rows, err := s.importRows(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	providers, stats := ingest.FromRows(rows)
	if stats.RowsImported == 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "No importable rows found",
			"stats": stats,
		})
	}

	s.Repo.ReplaceAll(providers)
	if err := s.Store.ReplaceAll(c.Request().Context(), providers); err != nil {
		// In-memory state is already updated; the snapshot will be stale on
		// restart but the running instance serves the new data.
		s.logger.Error("failed to persist imported providers", zap.Error(err))
	}

	s.logger.Info("provider import complete",
		zap.Int("seen", stats.RowsSeen),
		zap.Int("imported", stats.RowsImported),
		zap.Int("skipped", stats.RowsSkipped))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats": stats,
		"total": len(providers),
	})
}

func (s *Server) importRows(c echo.Context) ([]ingest.Row, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ingest.ParseCSV(f)
	}

	var body struct {
		Rows []ingest.Row `json:"rows"`
	}
	if err := c.Bind(&body); err != nil {
		return nil, err
	}
	return body.Rows, nil
}

type rankUpdateRequest struct {
	Rank int `json:"rank" validate:"required,gt=0"`
}

func (s *Server) handleUpdateRank(c echo.Context) error {
	var in rankUpdateRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	id := c.Param("id")
	if _, ok := s.Repo.GetByID(id); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	s.Repo.UpdateRank(id, in.Rank)
	if err := s.Store.ReplaceAll(c.Request().Context(), s.Repo.GetAll()); err != nil {
		s.logger.Error("failed to persist rank update", zap.String("id", id), zap.Error(err))
	}

	p, _ := s.Repo.GetByID(id)
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing image file"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read image file"})
	}
	defer f.Close()

	filename, err := s.Uploads.Save(fileHeader.Filename, f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"filename": filename,
		"url":      "/uploads/" + filename,
	})
}

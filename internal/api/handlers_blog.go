package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/marcus/aba-directory/internal/blog"
	"github.com/marcus/aba-directory/internal/db"
	"go.uber.org/zap"
)

func (s *Server) handleListPosts(c echo.Context) error {
	posts, err := s.Blog.List(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to list posts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load posts"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"posts": posts,
		"total": len(posts),
	})
}

func (s *Server) handleGetPost(c echo.Context) error {
	post, related, err := s.Blog.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
		}
		s.logger.Error("failed to load post", zap.String("slug", c.Param("slug")), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load post"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"post":    post,
		"related": related,
	})
}

func (s *Server) handleCreatePost(c echo.Context) error {
	var in blog.CreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	post, err := s.Blog.Create(c.Request().Context(), in)
	if err != nil {
		s.logger.Error("failed to create post", zap.String("title", in.Title), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create post"})
	}
	return c.JSON(http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(c echo.Context) error {
	var in blog.UpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	post, err := s.Blog.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
		}
		s.logger.Error("failed to update post", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update post"})
	}
	return c.JSON(http.StatusOK, post)
}

func (s *Server) handleDeletePost(c echo.Context) error {
	if err := s.Blog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
		}
		s.logger.Error("failed to delete post", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete post"})
	}
	return c.NoContent(http.StatusNoContent)
}

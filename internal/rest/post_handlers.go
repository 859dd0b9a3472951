package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/blog-api/config"
	"github.com/mkravets/blog-api/internal/auth"
	"github.com/mkravets/blog-api/internal/blog"
	"github.com/mkravets/blog-api/internal/storage"
)

type Handler struct {
	posts   *blog.Manager
	auth    *auth.Authenticator
	uploads *storage.Gateway
	cfg     *config.Config
	log     *slog.Logger
}

func NewHandler(posts *blog.Manager, authenticator *auth.Authenticator,
	uploads *storage.Gateway, cfg *config.Config, log *slog.Logger) *Handler {

	return &Handler{
		posts:   posts,
		auth:    authenticator,
		uploads: uploads,
		cfg:     cfg,
		log:     log,
	}
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// Posts handles GET /posts
// @Summary List posts
// @Description Anonymous callers get published posts ordered by publishedAt DESC. Admin callers get all posts ordered by createdAt DESC
// @Tags posts
// @Produce json
// @Success 200 {array} rest.Post
// @Failure 500 {object} map[string]string
// @Router /posts [get]
func (h *Handler) Posts(c echo.Context) error {
	identity := identityFrom(c)

	posts, err := h.posts.Posts(c.Request().Context(), identity.IsAdmin())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, NewPosts(posts))
}

// PostByID handles GET /posts/:id
// @Summary Get post by ID
// @Description A draft post is returned only to admin callers; anonymous callers get the same 404 as for a nonexistent id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} rest.Post
// @Failure 400,404,500 {object} map[string]string
// @Router /posts/{id} [get]
func (h *Handler) PostByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	identity := identityFrom(c)

	post, err := h.posts.PostByID(c.Request().Context(), id, identity.IsAdmin())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	if post == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}

	return c.JSON(http.StatusOK, NewPost(*post))
}

// CreatePost handles POST /posts
// @Summary Create a post
// @Description Creates a post. isDraft=false publishes immediately and stamps publishedAt
// @Tags posts
// @Accept json
// @Produce json
// @Param request body rest.PostRequest true "Post payload"
// @Success 201 {object} rest.Post
// @Failure 400,401,500 {object} map[string]string
// @Security ApiKeyAuth
// @Router /posts [post]
func (h *Handler) CreatePost(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	post, err := h.posts.CreatePost(c.Request().Context(), blog.PostInput{
		Title:   req.Title,
		Content: req.Content,
		IsDraft: req.IsDraft,
	})
	if errors.Is(err, blog.ErrValidation) {
		return h.handleError(c, err, http.StatusBadRequest, err.Error())
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	c.Response().Header().Set("Location", fmt.Sprintf("/posts/%d", post.ID))
	return c.JSON(http.StatusCreated, NewPost(*post))
}

// UpdatePost handles PUT /posts/:id
// @Summary Update a post
// @Description Full replacement of title, content and draft state. The body id must match the path id. The first publish stamps publishedAt; later re-drafting never clears it
// @Tags posts
// @Accept json
// @Param id path int true "Post ID"
// @Param request body rest.PostRequest true "Post payload"
// @Success 204
// @Failure 400,401,404,500 {object} map[string]string
// @Security ApiKeyAuth
// @Router /posts/{id} [put]
func (h *Handler) UpdatePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}
	if req.ID != id {
		return h.handleError(c, nil, http.StatusBadRequest, "body id does not match path id")
	}

	found, err := h.posts.UpdatePost(c.Request().Context(), id, blog.PostInput{
		Title:   req.Title,
		Content: req.Content,
		IsDraft: req.IsDraft,
	})
	if errors.Is(err, blog.ErrValidation) {
		return h.handleError(c, err, http.StatusBadRequest, err.Error())
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}

	return c.NoContent(http.StatusNoContent)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete a post
// @Description Hard delete, no tombstone
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 400,401,404,500 {object} map[string]string
// @Security ApiKeyAuth
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	found, err := h.posts.DeletePost(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}

	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int, error) {
	idStr := c.Param("id")
	if idStr == "" {
		return 0, fmt.Errorf("missing id")
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("parse id: %w", err)
	}

	return id, nil
}

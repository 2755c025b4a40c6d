package mockapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the users resource:
//
//	GET    /users       list
//	POST   /users       create, 201 with the stored record
//	GET    /users/:id   get
//	PUT    /users/:id   replace
//	DELETE /users/:id   delete, 200 with an empty object
type Handler struct {
	repo   Repository
	logger logging.Logger
}

func NewHandler(repo Repository, logger logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger.With("component", "handler")}
}

// Register mounts the routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/users", h.ListUsers)
	e.POST("/users", h.CreateUser)
	e.GET("/users/:id", h.GetUser)
	e.PUT("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.DeleteUser)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.repo.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "list_users", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return h.fail(c, "get_user", ErrUserNotFound)
	}
	u, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "get_user", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var in models.User
	if err := c.Bind(&in); err != nil {
		h.logger.Warn(c.Request().Context(), "failed to bind create request", "error", err)
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	u, err := h.repo.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, "create_user", err)
	}
	h.logger.Info(c.Request().Context(), "user created", "user_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return h.fail(c, "update_user", ErrUserNotFound)
	}

	var in models.User
	if err := c.Bind(&in); err != nil {
		h.logger.Warn(c.Request().Context(), "failed to bind update request", "error", err)
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	u, err := h.repo.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, "update_user", err)
	}
	h.logger.Info(c.Request().Context(), "user updated", "user_id", id)
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return h.fail(c, "delete_user", ErrUserNotFound)
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "delete_user", err)
	}
	h.logger.Info(c.Request().Context(), "user deleted", "user_id", id)
	return c.JSON(http.StatusOK, struct{}{})
}

func (h *Handler) fail(c echo.Context, op string, err error) error {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrUserNotFound) {
		status = http.StatusNotFound
	}
	h.logger.Warn(c.Request().Context(), "request failed", "operation", op, "status", status, "error", err)
	return c.JSON(status, errorResponse{Error: err.Error()})
}

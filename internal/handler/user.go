package handler

import (
	"net/http"
	"strings"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/service"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewUserRequest is the body of POST /api/exercise/new-user.
type NewUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

func (r *NewUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validation.ValidateStruct(r)
}

// ListUsersRequest carries no input.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

func newUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

// UserListResponse is the users array; it never encodes as null.
type UserListResponse []UserResponse

func (r UserListResponse) ResultCount() int {
	return len(r)
}

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// RegisterUser returns the user named by the request, creating it first if
// the name is new.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	return Handle[NewUserRequest](h.Handler, func(c echo.Context, req *NewUserRequest) (UserResponse, error) {
		user, err := h.users.Register(c.Request().Context(), req.Username)
		if err != nil {
			return UserResponse{}, err
		}
		return newUserResponse(user), nil
	}, http.StatusOK)(c)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	return Handle[ListUsersRequest](h.Handler, func(c echo.Context, _ *ListUsersRequest) (UserListResponse, error) {
		users, err := h.users.List(c.Request().Context())
		if err != nil {
			return nil, err
		}

		response := make(UserListResponse, 0, len(users))
		for _, u := range users {
			response = append(response, newUserResponse(u))
		}
		return response, nil
	}, http.StatusOK)(c)
}

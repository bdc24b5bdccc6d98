package handler

import (
	"net/http"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/pkg/httputils"
	"tush00nka/group_chat/internal/pkg/logging"
	"tush00nka/group_chat/internal/service"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", errorHandler(h.createUser)).Methods(http.MethodPost)
	router.HandleFunc("/users/{username}", errorHandler(h.deleteUser)).Methods(http.MethodDelete)
}

type createUserRequest struct {
	Username string `json:"username"`
}

// @Summary Create user
// @Description Create a user. Creating an existing username succeeds without changes.
// @ID create-user
// @Tags users
// @Accept json
// @Produce json
// @Param userData body createUserRequest true "User data"
// @Success 201
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /users [post]
func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) error {
	var request createUserRequest
	if err := httputils.DecodeJSON(r, &request); err != nil {
		return err
	}

	logger := logging.Ctx(r.Context())
	logger.Info().Str(logging.FieldUsername, request.Username).Msg("creating user")

	if request.Username == "" {
		return model.NewValidationError("Missing username")
	}

	if _, err := h.userService.CreateUser(r.Context(), request.Username); err != nil {
		return err
	}

	httputils.ResponseStatus(w, http.StatusCreated)
	return nil
}

// @Summary Delete user
// @Description Delete a user and its chat memberships
// @ID delete-user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 500 {object} httputils.ErrorResponse
// @Router /users/{username} [delete]
func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) error {
	username := mux.Vars(r)["username"]

	logger := logging.Ctx(r.Context())
	logger.Info().Str(logging.FieldUsername, username).Msg("deleting user")

	if username == "" {
		return model.NewValidationError("Missing username")
	}

	if err := h.userService.DeleteUser(r.Context(), username); err != nil {
		return err
	}

	httputils.ResponseStatus(w, http.StatusNoContent)
	return nil
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type AdminController struct {
	users    *services.UserService
	userRepo *repositories.UserRepository
}

func NewAdminController(users *services.UserService, userRepo *repositories.UserRepository) *AdminController {
	return &AdminController{users: users, userRepo: userRepo}
}

// Users returns a page of accounts.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, pagination, err := c.userRepo.Paginate(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not list users")
		return
	}
	response.Paginated(w, users, pagination)
}

// Ban toggles an account's active flag. Hitting it on an already banned
// account unbans it.
func (c *AdminController) Ban(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	err = c.users.BanUser(r.Context(), uint(id))
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.NotFound(w)
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not update user")
	default:
		response.Success(w, map[string]string{"message": "User updated"})
	}
}

type changeRolesInput struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

// ChangeRoles replaces a user's role set.
func (c *AdminController) ChangeRoles(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input changeRolesInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	err = c.users.ChangeRoles(r.Context(), uint(id), input.Roles)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.NotFound(w)
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not update roles")
	default:
		response.Success(w, map[string]string{"message": "Roles updated"})
	}
}

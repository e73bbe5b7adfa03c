package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-system/internal/core/ports"
)

// UserHandler manages staff accounts.
type UserHandler struct {
	users    ports.UserService
	mediaURL string
}

func NewUserHandler(users ports.UserService, mediaURL string) *UserHandler {
	return &UserHandler{users: users, mediaURL: mediaURL}
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  userResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/users.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterUserInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user with profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	detail, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail, h.mediaURL))
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "User id"
// @Param        body  body      userRequest  true  "Account fields"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetProfile handles GET /v1/profile.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Router       /v1/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.users.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail, h.mediaURL))
}

// UpdateProfile handles PUT /v1/profile.
//
// @Summary      Edit the current user's account and profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Account and profile fields"
// @Success      200   {object}  userResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := h.users.UpdateProfile(c.Request().Context(), actor.ID, ports.UpdateProfileInput{
		User:    req.userRequest.toInput(),
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail, h.mediaURL))
}

// UploadProfileImage handles PUT /v1/profile/image.
//
// @Summary      Replace the current user's profile image
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profile_image  formData  file  true  "Image file"
// @Success      200            {object}  userResponse
// @Failure      400            {object}  map[string]string
// @Router       /v1/profile/image [put]
func (h *UserHandler) UploadProfileImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	file, err := openFormFile(c, "profile_image")
	if err != nil {
		return err
	}
	defer file.Close()

	detail, err := h.users.SetProfileImage(c.Request().Context(), actor.ID, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail, h.mediaURL))
}

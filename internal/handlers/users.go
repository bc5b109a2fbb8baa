package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anousone23/twitter-clone/internal/auth"
	"github.com/anousone23/twitter-clone/internal/dto"
	"github.com/anousone23/twitter-clone/internal/service"
)

// UserHandler handles profiles, suggestions, profile updates and the
// follow toggle.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile godoc
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  dto.UserResponse
// @Failure      404       {object}  map[string]string
// @Router       /users/profile/{username} [get]
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("get profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

// Suggested godoc
// @Summary      Suggested users to follow
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/suggested [get]
func (h *UserHandler) Suggested(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	list, err := h.users.Suggested(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("suggested users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, usersToResponses(list))
}

// Follow godoc
// @Summary      Follow or unfollow a user (toggle)
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Target user ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/follow/{id} [post]
func (h *UserHandler) Follow(c *gin.Context) {
	targetID, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	followed, err := h.users.FollowUnfollow(c.Request.Context(), user.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			log.Printf("follow toggle: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}
	if followed {
		c.JSON(http.StatusOK, gin.H{"message": "user followed successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unfollowed successfully"})
}

// Update godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.UpdateProfileRequest  true  "Changes"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/update [post]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, _ := auth.CurrentUser(c)
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, service.UpdateProfileInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImage:    req.ProfileImage,
		CoverImage:      req.CoverImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordPair),
			errors.Is(err, service.ErrWrongPassword),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			log.Printf("update profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}
	c.JSON(http.StatusOK, userToResponse(updated))
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anousone23/twitter-clone/internal/auth"
	"github.com/anousone23/twitter-clone/internal/dto"
	"github.com/anousone23/twitter-clone/internal/service"
)

// PostHandler handles post CRUD, comments, the like toggle and feeds.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler returns a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreatePostRequest  true  "Post body"
// @Success      201   {object}  dto.PostResponse
// @Failure      400   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, _ := auth.CurrentUser(c)
	post, err := h.posts.Create(c.Request.Context(), user.ID, req.Text, req.Image)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPost) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("create post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusCreated, postToResponse(post))
}

// Delete godoc
// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	if err := h.posts.Delete(c.Request.Context(), user.ID, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not authorized to delete this post"})
		default:
			log.Printf("delete post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// Comment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Post ID"
// @Param        body  body      dto.CommentRequest  true  "Comment"
// @Success      200   {object}  dto.PostResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /posts/comment/{id} [post]
func (h *PostHandler) Comment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, _ := auth.CurrentUser(c)
	post, err := h.posts.Comment(c.Request.Context(), user.ID, postID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		default:
			log.Printf("comment on post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}
	c.JSON(http.StatusOK, postToResponse(post))
}

// Like godoc
// @Summary      Like or unlike a post (toggle)
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {array}   int64
// @Failure      404  {object}  map[string]string
// @Router       /posts/like/{id} [post]
func (h *PostHandler) Like(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	likes, _, err := h.posts.LikeUnlike(c.Request.Context(), user.ID, postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		log.Printf("like toggle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, likes)
}

// All godoc
// @Summary      Global feed
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.ListPostsResponse
// @Router       /posts [get]
func (h *PostHandler) All(c *gin.Context) {
	list, err := h.posts.All(c.Request.Context())
	if err != nil {
		log.Printf("list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Items: postsToResponses(list)})
}

// Following godoc
// @Summary      Posts from followed users
// @Tags         posts
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListPostsResponse
// @Router       /posts/following [get]
func (h *PostHandler) Following(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	list, err := h.posts.Following(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("following feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Items: postsToResponses(list)})
}

// Liked godoc
// @Summary      Posts liked by a user
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.ListPostsResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/likes/{id} [get]
func (h *PostHandler) Liked(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.posts.LikedBy(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("liked posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Items: postsToResponses(list)})
}

// ByUser godoc
// @Summary      A user's posts
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  dto.ListPostsResponse
// @Failure      404       {object}  map[string]string
// @Router       /posts/user/{username} [get]
func (h *PostHandler) ByUser(c *gin.Context) {
	list, err := h.posts.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("user posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Items: postsToResponses(list)})
}

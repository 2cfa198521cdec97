package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
)

type BlogHandler struct {
	*BaseHandler
	blogService *services.BlogService
}

func NewBlogHandler(base *BaseHandler, blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{
		BaseHandler: base,
		blogService: blogService,
	}
}

// RegisterRoutes registers the public read endpoints.
func (h *BlogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	blogs := rg.Group("/blogs")
	{
		blogs.GET("", h.ListActive)
		blogs.GET("/:id", h.GetByID)
		blogs.GET("/author/:authorId", h.ListByAuthor)
		blogs.GET("/keyword/:keywordId", h.ListByKeyword)
	}
}

// RegisterProtectedRoutes registers the write endpoints.
func (h *BlogHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	blogs := rg.Group("/blogs")
	{
		blogs.GET("/all", h.List)
		blogs.POST("", h.Create)
		blogs.PUT("/:id", h.Update)
		blogs.DELETE("/:id", h.Delete)
		blogs.POST("/:id/keywords/:keywordId", h.AddKeyword)
		blogs.DELETE("/:id/keywords/:keywordId", h.RemoveKeyword)
	}
}

func (h *BlogHandler) GetByID(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	blog, err := h.blogService.GetByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) List(c *gin.Context) {
	var req dto.PagedRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.blogService.List(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlogHandler) ListActive(c *gin.Context) {
	var req dto.PagedRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.blogService.ListActive(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlogHandler) ListByAuthor(c *gin.Context) {
	authorID, err := ParseParamUint(c, "authorId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.PagedRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.blogService.ListByAuthor(db, authorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlogHandler) ListByKeyword(c *gin.Context) {
	keywordID, err := ParseParamUint(c, "keywordId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.PagedRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.blogService.ListByKeyword(db, keywordID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlogHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBlogRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	blog, err := h.blogService.Create(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, blog)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateBlogRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	blog, err := h.blogService.Update(db, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.blogService.Delete(db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted"})
}

func (h *BlogHandler) AddKeyword(c *gin.Context) {
	blogID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	keywordID, err := ParseParamUint(c, "keywordId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.blogService.AddKeyword(db, blogID, keywordID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Keyword added to blog"})
}

func (h *BlogHandler) RemoveKeyword(c *gin.Context) {
	blogID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	keywordID, err := ParseParamUint(c, "keywordId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.blogService.RemoveKeyword(db, blogID, keywordID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Keyword removed from blog"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
)

type KeywordHandler struct {
	*BaseHandler
	keywordService *services.KeywordService
}

func NewKeywordHandler(base *BaseHandler, keywordService *services.KeywordService) *KeywordHandler {
	return &KeywordHandler{
		BaseHandler:    base,
		keywordService: keywordService,
	}
}

// RegisterRoutes registers the public read endpoints.
func (h *KeywordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	keywords := rg.Group("/keywords")
	{
		keywords.GET("", h.List)
		keywords.GET("/:id", h.GetByID)
	}
}

// RegisterProtectedRoutes registers the write endpoints.
func (h *KeywordHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	keywords := rg.Group("/keywords")
	{
		keywords.POST("", h.Create)
		keywords.PUT("/:id", h.Update)
		keywords.DELETE("/:id", h.Delete)
	}
}

func (h *KeywordHandler) GetByID(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	keyword, err := h.keywordService.GetByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, keyword)
}

func (h *KeywordHandler) List(c *gin.Context) {
	db := h.GetDB(c)

	// No pagination params means the whole catalog, ordered by name.
	if c.Query("page") == "" && c.Query("pageSize") == "" {
		keywords, err := h.keywordService.GetAll(db)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, keywords)
		return
	}

	var req dto.PagedRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	result, err := h.keywordService.List(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *KeywordHandler) Create(c *gin.Context) {
	var req dto.CreateKeywordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	keyword, err := h.keywordService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, keyword)
}

func (h *KeywordHandler) Update(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateKeywordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	keyword, err := h.keywordService.Update(db, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, keyword)
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.keywordService.Delete(db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Keyword deleted"})
}

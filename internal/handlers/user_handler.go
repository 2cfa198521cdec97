package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/middleware"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewUserHandler(base *BaseHandler, userService *services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes registers the authenticated user endpoints. Listing,
// status changes and deletion are admin-only.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
		users.GET("/:id", h.GetByID)
	}

	admin := users.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("", h.List)
		admin.GET("/role/:role", h.GetByRole)
		admin.GET("/phone/:phone", h.GetByPhone)
		admin.PUT("/:id", h.Update)
		admin.PATCH("/:id/status", h.UpdateStatus)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile lets callers change their own record. The status flags
// are admin-only and rejected here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if req.IsActive != nil || req.IsVerified != nil {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Status flags can only be changed by an admin"))
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.Update(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserFilterRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.userService.List(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) GetByRole(c *gin.Context) {
	role := models.RoleName(c.Param("role"))

	db := h.GetDB(c)

	users, err := h.userService.GetByRole(db, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByPhone(c *gin.Context) {
	db := h.GetDB(c)

	user, err := h.userService.GetByPhone(db, c.Param("phone"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.Update(db, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.userService.UpdateStatus(db, id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.userService.Delete(db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

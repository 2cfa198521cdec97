package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/middleware"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService *services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes registers the public auth endpoints.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/send-verification", h.SendVerification)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.GET("/verify-email", h.VerifyEmailByLink)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/validate-token", h.ValidateToken)
		auth.POST("/logout", h.Logout)
	}
}

// RegisterProtectedRoutes registers the auth endpoints that need a
// valid access token.
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/change-password", h.ChangePassword)
		auth.GET("/me", h.GetCurrentUser)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Refresh(db, req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes the refresh token from the body. It is public: a
// client whose access token already expired can still end its session.
// Revoking an already revoked session is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.Logout(db, req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

func (h *AuthHandler) SendVerification(c *gin.Context) {
	var req dto.SendVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	sent, err := h.authService.SendEmailVerification(db, req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !sent {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification email could not be sent"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification email sent"})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	h.SendVerification(c)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	h.verifyEmailToken(c, req.Token)
}

// VerifyEmailByLink serves the link embedded in the verification email,
// which arrives as a GET with a token query parameter.
func (h *AuthHandler) VerifyEmailByLink(c *gin.Context) {
	h.verifyEmailToken(c, c.Query("token"))
}

func (h *AuthHandler) verifyEmailToken(c *gin.Context, token string) {
	db := h.GetDB(c)

	verified, err := h.authService.VerifyEmail(db, token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !verified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email successfully verified"})
}

// ValidateToken lets clients and sibling services check an access token
// without calling a protected endpoint.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req dto.ValidateTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claims, err := h.authService.ParseAccessToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ValidateTokenResponse{Valid: false})
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ValidateTokenResponse{Valid: false})
		return
	}

	c.JSON(http.StatusOK, dto.ValidateTokenResponse{
		Valid:  true,
		UserID: userID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ChangePassword(db, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password successfully changed"})
}

// ForgotPassword never discloses whether the address exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if _, err := h.authService.RequestPasswordReset(db, req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If the email exists, a password reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ResetPassword(db, req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password successfully reset"})
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	c.JSON(http.StatusOK, gin.H{
		"id":    userID,
		"role":  role,
		"email": c.GetString(middleware.ContextEmailKey),
	})
}

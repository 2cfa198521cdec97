package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/auth"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/pkg/email"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/utils"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/pkg/apperrors"
)

const (
	// RefreshTokenTTL bounds how long a session can be silently renewed.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// VerificationTokenTTL bounds how long an emailed verification link
	// stays valid.
	VerificationTokenTTL = 24 * time.Hour

	// ResetTokenTTL bounds how long a password reset link stays valid.
	ResetTokenTTL = time.Hour
)

// AuthService owns registration, credential checks, the session token
// lifecycle and the email verification / password reset workflows.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	mailer   email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager, mailer email.Provider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// Register creates an account, assigns the default Customer role when
// none is given and kicks off email verification. A failed verification
// send does not fail the registration.
func (s *AuthService) Register(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	taken, err := s.userRepo.IsEmailTaken(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	phone := req.Phone
	if phone != "" {
		phone = utils.NormalizePhoneNumber(phone)
		taken, err := s.userRepo.IsPhoneTaken(db, phone)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrPhoneAlreadyExists
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var role *models.Role
	roleID := req.RoleID
	if roleID == nil {
		role, err = s.userRepo.GetRoleByName(db, models.RoleCustomer)
		if err == nil {
			roleID = &role.ID
		} else {
			role = nil
		}
	}

	user := &models.User{
		RoleID:          roleID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           phone,
		PasswordHash:    hash,
		IsActive:        true,
		IsVerified:      false,
		LocationAddress: req.LocationAddress,
		LocationCity:    req.LocationCity,
		AvatarURL:       req.AvatarURL,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	user.Role = role

	if _, err := s.SendEmailVerification(db, user.Email); err != nil {
		logger.WithError(err).Warn("failed to send verification email after registration",
			"user_id", user.ID)
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return dto.NewUserResponse(user), nil
}

// Authenticate resolves the login identifier to an account and checks
// the password and account state. The identifier may be an email or a
// phone number; phone numbers are normalized before lookup.
func (s *AuthService) Authenticate(db *gorm.DB, login, password string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case utils.IsEmail(login):
		user, err = s.userRepo.GetByEmail(db, login)
	case utils.IsPhoneNumber(login):
		user, err = s.userRepo.GetByPhone(db, utils.NormalizePhoneNumber(login))
	default:
		user, err = s.userRepo.GetByEmailOrPhone(db, login)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}
	if !user.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}
	return user, nil
}

// Login authenticates and issues a fresh token pair. The refresh token
// replaces whatever the account held before, so at most one refresh
// token is live per account.
func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.Authenticate(db, req.Login, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}

	logger.Info("user logged in", "user_id", user.ID)
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}

// Refresh exchanges a live refresh token for a new token pair. The old
// refresh token is rotated out in the same step; an expired stored
// token behaves exactly like an unknown one.
func (s *AuthService) Refresh(db *gorm.DB, refreshToken string) (*dto.RefreshTokenResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByRefreshToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	accessToken, newRefresh, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Logout revokes the session that holds the refresh token. Expired
// tokens still match so a client with a lapsed access token can end its
// session. Idempotent: empty or unknown tokens succeed silently.
func (s *AuthService) Logout(db *gorm.DB, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.userRepo.RevokeRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// revokeSessions clears the account's refresh token so existing
// sessions cannot renew after a credential change.
func (s *AuthService) revokeSessions(db *gorm.DB, userID uint) error {
	err := s.userRepo.UpdateRefreshToken(db, userID, "", time.Now().Add(-time.Hour))
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

// SendEmailVerification stores a fresh 24h verification token and
// emails the link. Unknown addresses and already verified accounts
// report false without an error so the endpoint leaks nothing beyond
// what the login flow already does.
func (s *AuthService) SendEmailVerification(db *gorm.DB, emailAddr string) (bool, error) {
	user, err := s.userRepo.GetByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	if user.IsVerified {
		return false, nil
	}

	token := auth.GenerateVerificationToken()
	if err := s.userRepo.UpdateVerificationToken(db, user.ID, token, time.Now().Add(VerificationTokenTTL)); err != nil {
		return false, apperrors.InternalError(err)
	}

	if err := s.mailer.SendVerification(user.Email, user.Name, token); err != nil {
		// The token stays stored; a later resend mints a new one anyway.
		logger.WithError(err).Warn("verification email send failed", "user_id", user.ID)
		return false, nil
	}

	logger.Info("verification email sent", "user_id", user.ID)
	return true, nil
}

// ResendEmailVerification is the resend entry point; it mints a new
// token rather than replaying the old one.
func (s *AuthService) ResendEmailVerification(db *gorm.DB, emailAddr string) (bool, error) {
	return s.SendEmailVerification(db, emailAddr)
}

// VerifyEmail confirms the address behind a live verification token,
// clears the token and sends the welcome email best-effort. A missing
// or expired token reports false.
func (s *AuthService) VerifyEmail(db *gorm.DB, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	user, err := s.userRepo.GetByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}

	if err := s.userRepo.MarkEmailVerified(db, user.ID); err != nil {
		return false, apperrors.InternalError(err)
	}

	if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
		logger.WithError(err).Warn("welcome email send failed", "user_id", user.ID)
	}

	logger.Info("email verified", "user_id", user.ID)
	return true, nil
}

// ChangePassword rotates the password after checking the current one
// and revokes the refresh token so old sessions cannot renew.
func (s *AuthService) ChangePassword(db *gorm.DB, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Current password is incorrect")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.revokeSessions(db, userID); err != nil {
		return err
	}

	logger.Info("password changed", "user_id", userID)
	return nil
}

// RequestPasswordReset stores a short-lived reset token and emails the
// link. Unknown addresses report false without an error.
func (s *AuthService) RequestPasswordReset(db *gorm.DB, emailAddr string) (bool, error) {
	user, err := s.userRepo.GetByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}

	token := auth.GenerateVerificationToken()
	expiresAt := time.Now().Add(ResetTokenTTL)
	if err := s.userRepo.UpdateResetToken(db, user.ID, token, &expiresAt); err != nil {
		return false, apperrors.InternalError(err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, user.Name, token); err != nil {
		logger.WithError(err).Warn("password reset email send failed", "user_id", user.ID)
		return false, nil
	}

	logger.Info("password reset email sent", "user_id", user.ID)
	return true, nil
}

// ResetPassword sets a new password for the account behind a live reset
// token, then clears the token and any refresh token.
func (s *AuthService) ResetPassword(db *gorm.DB, token, newPassword string) error {
	if token == "" {
		return apperrors.ErrInvalidToken
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.GetByResetToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateResetToken(db, user.ID, "", nil); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.revokeSessions(db, user.ID); err != nil {
		return err
	}

	logger.Info("password reset completed", "user_id", user.ID)
	return nil
}

// ParseAccessToken validates an access token and returns its claims.
func (s *AuthService) ParseAccessToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueTokens(db *gorm.DB, user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = s.tokens.GenerateToken(user.ID, user.Name, user.Email, user.RoleName())
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}

	refreshToken, err = auth.GenerateRefreshToken()
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := s.userRepo.UpdateRefreshToken(db, user.ID, refreshToken, expiresAt); err != nil {
		return "", "", apperrors.InternalError(err)
	}
	return accessToken, refreshToken, nil
}

package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/auth"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/pkg/email"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/pkg/apperrors"
)

// fakeUserRepository keeps users in memory and mirrors the lookup
// semantics of the real repository, including token expiry checks.
type fakeUserRepository struct {
	users  map[uint]*models.User
	roles  map[uint]*models.Role
	nextID uint
}

func newFakeUserRepository() *fakeUserRepository {
	repo := &fakeUserRepository{
		users:  make(map[uint]*models.User),
		roles:  make(map[uint]*models.Role),
		nextID: 1,
	}
	repo.roles[1] = &models.Role{BaseModel: models.BaseModel{ID: 1}, Name: models.RoleAdmin}
	repo.roles[2] = &models.Role{BaseModel: models.BaseModel{ID: 2}, Name: models.RolePhotographer}
	repo.roles[3] = &models.Role{BaseModel: models.BaseModel{ID: 3}, Name: models.RoleCustomer}
	return repo
}

func (r *fakeUserRepository) clone(u *models.User) *models.User {
	cp := *u
	if u.RoleID != nil {
		if role, ok := r.roles[*u.RoleID]; ok {
			roleCopy := *role
			cp.Role = &roleCopy
		}
	}
	return &cp
}

func (r *fakeUserRepository) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return r.clone(u), nil
}

func (r *fakeUserRepository) GetByEmail(db *gorm.DB, emailAddr string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, emailAddr) {
			return r.clone(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetByPhone(db *gorm.DB, phone string) (*models.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return r.clone(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetByEmailOrPhone(db *gorm.DB, identifier string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, identifier) || u.Phone == identifier {
			return r.clone(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetByRefreshToken(db *gorm.DB, token string) (*models.User, error) {
	now := time.Now()
	for _, u := range r.users {
		if u.RefreshToken == token && u.RefreshToken != "" &&
			u.RefreshTokenExpiresAt != nil && u.RefreshTokenExpiresAt.After(now) {
			return r.clone(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	now := time.Now()
	for _, u := range r.users {
		if u.VerificationToken == token && u.VerificationToken != "" &&
			u.VerificationTokenExpiresAt != nil && u.VerificationTokenExpiresAt.After(now) {
			return r.clone(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetByResetToken(db *gorm.DB, token string) (*models.User, error) {
	now := time.Now()
	for _, u := range r.users {
		if u.ResetToken == token && u.ResetToken != "" &&
			u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now) {
			return r.clone(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetAll(db *gorm.DB) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *r.clone(u))
	}
	return out, nil
}

func (r *fakeUserRepository) GetByRole(db *gorm.DB, roleID uint) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.RoleID != nil && *u.RoleID == roleID {
			out = append(out, *r.clone(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepository) GetActive(db *gorm.DB) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, *r.clone(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepository) GetVerified(db *gorm.DB) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.IsVerified {
			out = append(out, *r.clone(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepository) GetUsersWithFilter(db *gorm.DB, filter repositories.UserFilter) ([]models.User, int64, error) {
	all, _ := r.GetAll(db)
	return all, int64(len(all)), nil
}

func (r *fakeUserRepository) Create(db *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepository) Update(db *gorm.DB, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepository) Delete(db *gorm.DB, id uint) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) IsEmailTaken(db *gorm.DB, emailAddr string) (bool, error) {
	_, err := r.GetByEmail(db, emailAddr)
	return err == nil, nil
}

func (r *fakeUserRepository) IsPhoneTaken(db *gorm.DB, phone string) (bool, error) {
	_, err := r.GetByPhone(db, phone)
	return err == nil, nil
}

func (r *fakeUserRepository) UpdatePassword(db *gorm.DB, id uint, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepository) UpdateStatus(db *gorm.DB, id uint, isActive, isVerified bool) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsActive = isActive
	u.IsVerified = isVerified
	return nil
}

func (r *fakeUserRepository) UpdateRefreshToken(db *gorm.DB, id uint, token string, expiresAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = token
	u.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepository) RevokeRefreshToken(db *gorm.DB, token string) error {
	for _, u := range r.users {
		if token != "" && u.RefreshToken == token {
			past := time.Now().Add(-time.Hour)
			u.RefreshToken = ""
			u.RefreshTokenExpiresAt = &past
		}
	}
	return nil
}

func (r *fakeUserRepository) UpdateVerificationToken(db *gorm.DB, id uint, token string, expiresAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.VerificationToken = token
	u.VerificationTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepository) UpdateResetToken(db *gorm.DB, id uint, token string, expiresAt *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiresAt = expiresAt
	return nil
}

func (r *fakeUserRepository) MarkEmailVerified(db *gorm.DB, id uint) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsVerified = true
	u.VerificationToken = ""
	u.VerificationTokenExpiresAt = nil
	return nil
}

func (r *fakeUserRepository) GetRoleByName(db *gorm.DB, name models.RoleName) (*models.Role, error) {
	for _, role := range r.roles {
		if strings.EqualFold(string(role.Name), string(name)) {
			cp := *role
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- test setup ---

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepository, *email.MockProvider) {
	t.Helper()

	tokens, err := auth.NewTokenManager(
		"test-secret-that-is-32-bytes-long!!",
		"snapdi-api", "snapdi-clients", time.Hour,
	)
	require.NoError(t, err)

	repo := newFakeUserRepository()
	mailer := email.NewMockProvider()
	return NewAuthService(repo, tokens, mailer), repo, mailer
}

func seedUser(t *testing.T, repo *fakeUserRepository, emailAddr, phone, password string, active, verified bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	roleID := uint(3)
	user := &models.User{
		RoleID:       &roleID,
		Name:         "Test User",
		Email:        emailAddr,
		Phone:        phone,
		PasswordHash: hash,
		IsActive:     active,
		IsVerified:   verified,
	}
	require.NoError(t, repo.Create(nil, user))
	return user
}

// --- login ---

func TestLogin_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "+84901234567", "super_password123", true, true)

	resp, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, user.ID, resp.User.ID)

	stored := repo.users[user.ID]
	assert.Equal(t, resp.RefreshToken, stored.RefreshToken)
	require.NotNil(t, stored.RefreshTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), *stored.RefreshTokenExpiresAt, time.Minute)
}

func TestLogin_ByFormattedPhoneNumber(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "linh@snapdi.vn", "+15551234567", "super_password123", true, true)

	resp, err := svc.Login(nil, &dto.LoginRequest{Login: "+1 (555) 123-4567", Password: "super_password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	_, err := svc.Login(nil, &dto.LoginRequest{Login: "LINH@SNAPDI.VN", Password: "super_password123"})
	assert.NoError(t, err)
}

func TestLogin_Failures(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "active@snapdi.vn", "", "super_password123", true, true)
	seedUser(t, repo, "inactive@snapdi.vn", "", "super_password123", false, true)
	seedUser(t, repo, "unverified@snapdi.vn", "", "super_password123", true, false)

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  *apperrors.AppError
	}{
		{"unknown account", "nobody@snapdi.vn", "super_password123", apperrors.ErrInvalidCredentials},
		{"wrong password", "active@snapdi.vn", "wrong", apperrors.ErrInvalidCredentials},
		{"inactive account", "inactive@snapdi.vn", "super_password123", apperrors.ErrAccountInactive},
		{"unverified account", "unverified@snapdi.vn", "super_password123", apperrors.ErrEmailNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(nil, &dto.LoginRequest{Login: tt.login, Password: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_WrongPasswordCheckedBeforeAccountState(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "inactive@snapdi.vn", "", "super_password123", false, false)

	// Bad credentials win over inactive/unverified so the response does
	// not reveal account state to a guesser.
	_, err := svc.Login(nil, &dto.LoginRequest{Login: "inactive@snapdi.vn", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// --- refresh ---

func TestRefresh_RotatesToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(nil, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is gone after rotation.
	_, err = svc.Refresh(nil, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	// The new one still works.
	_, err = svc.Refresh(nil, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_UnknownOrEmptyToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Refresh(nil, "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	_, err = svc.Refresh(nil, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefresh_ExpiredTokenBehavesLikeMissing(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	past := time.Now().Add(-time.Minute)
	repo.users[user.ID].RefreshToken = "expired-token"
	repo.users[user.ID].RefreshTokenExpiresAt = &past

	_, err := svc.Refresh(nil, "expired-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefresh_InactiveAccount(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	repo.users[user.ID].IsActive = false

	_, err = svc.Refresh(nil, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
}

// --- logout ---

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(nil, login.RefreshToken))

	assert.Empty(t, repo.users[user.ID].RefreshToken)
	_, err = svc.Refresh(nil, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

// A session stays revocable after its access token expires: logout
// needs only the refresh token, no authenticated call.
func TestLogout_WorksWithExpiredAccessToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	// Refresh token past its expiry still identifies the session.
	past := time.Now().Add(-time.Hour)
	repo.users[user.ID].RefreshTokenExpiresAt = &past

	require.NoError(t, svc.Logout(nil, login.RefreshToken))
	assert.Empty(t, repo.users[user.ID].RefreshToken)
}

func TestLogout_Idempotent(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(nil, login.RefreshToken))
	assert.NoError(t, svc.Logout(nil, login.RefreshToken))
	// Unknown and empty tokens log out fine too.
	assert.NoError(t, svc.Logout(nil, "never-issued-token"))
	assert.NoError(t, svc.Logout(nil, ""))
	assert.Empty(t, repo.users[user.ID].RefreshToken)
}

// --- email verification ---

func TestSendEmailVerification(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	user := seedUser(t, repo, "new@snapdi.vn", "", "super_password123", true, false)
	seedUser(t, repo, "done@snapdi.vn", "", "super_password123", true, true)

	sent, err := svc.SendEmailVerification(nil, "new@snapdi.vn")
	require.NoError(t, err)
	assert.True(t, sent)

	stored := repo.users[user.ID]
	assert.NotEmpty(t, stored.VerificationToken)
	require.NotNil(t, stored.VerificationTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(VerificationTokenTTL), *stored.VerificationTokenExpiresAt, time.Minute)

	require.Len(t, mailer.Verifications, 1)
	assert.Equal(t, "new@snapdi.vn", mailer.Verifications[0].To)
	assert.Equal(t, stored.VerificationToken, mailer.Verifications[0].Token)

	// Unknown address and already verified account both report false
	// without an error.
	sent, err = svc.SendEmailVerification(nil, "nobody@snapdi.vn")
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = svc.SendEmailVerification(nil, "done@snapdi.vn")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestSendEmailVerification_MailerFailure(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	user := seedUser(t, repo, "new@snapdi.vn", "", "super_password123", true, false)
	mailer.FailSends = assert.AnError

	sent, err := svc.SendEmailVerification(nil, "new@snapdi.vn")
	require.NoError(t, err)
	assert.False(t, sent)

	// The token is stored anyway; a resend mints a fresh one.
	assert.NotEmpty(t, repo.users[user.ID].VerificationToken)
}

func TestResendEmailVerification_MintsNewToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "new@snapdi.vn", "", "super_password123", true, false)

	_, err := svc.SendEmailVerification(nil, "new@snapdi.vn")
	require.NoError(t, err)
	first := repo.users[user.ID].VerificationToken

	_, err = svc.ResendEmailVerification(nil, "new@snapdi.vn")
	require.NoError(t, err)
	second := repo.users[user.ID].VerificationToken

	assert.NotEqual(t, first, second)
}

func TestVerifyEmail(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	user := seedUser(t, repo, "new@snapdi.vn", "", "super_password123", true, false)

	_, err := svc.SendEmailVerification(nil, "new@snapdi.vn")
	require.NoError(t, err)
	token := repo.users[user.ID].VerificationToken

	verified, err := svc.VerifyEmail(nil, token)
	require.NoError(t, err)
	assert.True(t, verified)

	stored := repo.users[user.ID]
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerificationToken)
	require.Len(t, mailer.Welcomes, 1)
	assert.Equal(t, "new@snapdi.vn", mailer.Welcomes[0].To)

	// A verification token cannot be replayed.
	verified, err = svc.VerifyEmail(nil, token)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyEmail_ExpiredOrUnknownToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "new@snapdi.vn", "", "super_password123", true, false)

	past := time.Now().Add(-time.Minute)
	repo.users[user.ID].VerificationToken = "expired-token"
	repo.users[user.ID].VerificationTokenExpiresAt = &past

	verified, err := svc.VerifyEmail(nil, "expired-token")
	require.NoError(t, err)
	assert.False(t, verified)

	verified, err = svc.VerifyEmail(nil, "unknown-token")
	require.NoError(t, err)
	assert.False(t, verified)

	verified, err = svc.VerifyEmail(nil, "")
	require.NoError(t, err)
	assert.False(t, verified)
}

// --- registration ---

func TestRegister_Success(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)

	resp, err := svc.Register(nil, &dto.CreateUserRequest{
		Name:     "Linh Tran",
		Email:    "linh@snapdi.vn",
		Phone:    "+84 90 123 4567",
		Password: "super_password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "linh@snapdi.vn", resp.Email)
	assert.Equal(t, models.RoleCustomer, resp.RoleName)
	assert.False(t, resp.IsVerified)

	stored := repo.users[resp.ID]
	assert.Equal(t, "+84901234567", stored.Phone)
	assert.NotEqual(t, "super_password123", stored.PasswordHash)

	// Registration kicks off verification automatically.
	require.Len(t, mailer.Verifications, 1)
	assert.Equal(t, "linh@snapdi.vn", mailer.Verifications[0].To)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	_, err := svc.Register(nil, &dto.CreateUserRequest{
		Name: "Another", Email: "LINH@snapdi.vn", Password: "super_password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "linh@snapdi.vn", "+84901234567", "super_password123", true, true)

	_, err := svc.Register(nil, &dto.CreateUserRequest{
		Name: "Another", Email: "other@snapdi.vn", Phone: "+84 90 123 4567", Password: "super_password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrPhoneAlreadyExists)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(nil, &dto.CreateUserRequest{
		Name: "Linh", Email: "linh@snapdi.vn", Password: "12345",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

// --- password change / reset ---

func TestChangePassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(nil, user.ID, "super_password123", "new_password456"))

	// Old sessions cannot renew after the change.
	_, err = svc.Refresh(nil, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	_, err = svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "new_password456"})
	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	err := svc.ChangePassword(nil, user.ID, "wrong", "new_password456")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestPasswordReset_FullFlow(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	user := seedUser(t, repo, "linh@snapdi.vn", "", "super_password123", true, true)

	sent, err := svc.RequestPasswordReset(nil, "linh@snapdi.vn")
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, mailer.PasswordResets, 1)

	token := repo.users[user.ID].ResetToken
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(nil, token, "new_password456"))

	assert.Empty(t, repo.users[user.ID].ResetToken)
	_, err = svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "new_password456"})
	assert.NoError(t, err)

	// Reset tokens are single use.
	err = svc.ResetPassword(nil, token, "another_password789")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRequestPasswordReset_UnknownAddress(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)

	sent, err := svc.RequestPasswordReset(nil, "nobody@snapdi.vn")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, mailer.PasswordResets)
}

// --- end to end ---

func TestAuthLifecycle(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	// Register; login is blocked until the email is verified.
	resp, err := svc.Register(nil, &dto.CreateUserRequest{
		Name: "Linh Tran", Email: "linh@snapdi.vn", Password: "super_password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

	// Verify, then the whole session lifecycle works.
	token := repo.users[resp.ID].VerificationToken
	verified, err := svc.VerifyEmail(nil, token)
	require.NoError(t, err)
	require.True(t, verified)

	login, err := svc.Login(nil, &dto.LoginRequest{Login: "linh@snapdi.vn", Password: "super_password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(nil, login.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(nil, refreshed.RefreshToken))
	_, err = svc.Refresh(nil, refreshed.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

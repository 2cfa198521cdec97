package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserFilter holds the optional criteria of GetUsersWithFilter. Nil /
// zero fields are skipped.
type UserFilter struct {
	Search      string // case-insensitive substring on name or email
	RoleID      *uint
	IsActive    *bool
	IsVerified  *bool
	City        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string // name, email, createdAt; anything else orders by id
	SortDesc    bool
	Page        int
	PageSize    int
}

type UserRepository interface {
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	GetByEmail(db *gorm.DB, email string) (*models.User, error)
	GetByPhone(db *gorm.DB, phone string) (*models.User, error)
	GetByEmailOrPhone(db *gorm.DB, identifier string) (*models.User, error)
	GetByRefreshToken(db *gorm.DB, token string) (*models.User, error)
	GetByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	GetByResetToken(db *gorm.DB, token string) (*models.User, error)
	GetAll(db *gorm.DB) ([]models.User, error)
	GetByRole(db *gorm.DB, roleID uint) ([]models.User, error)
	GetActive(db *gorm.DB) ([]models.User, error)
	GetVerified(db *gorm.DB) ([]models.User, error)
	GetUsersWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	Delete(db *gorm.DB, id uint) error
	IsEmailTaken(db *gorm.DB, email string) (bool, error)
	IsPhoneTaken(db *gorm.DB, phone string) (bool, error)
	UpdatePassword(db *gorm.DB, id uint, passwordHash string) error
	UpdateStatus(db *gorm.DB, id uint, isActive, isVerified bool) error
	UpdateRefreshToken(db *gorm.DB, id uint, token string, expiresAt time.Time) error
	RevokeRefreshToken(db *gorm.DB, token string) error
	UpdateVerificationToken(db *gorm.DB, id uint, token string, expiresAt time.Time) error
	UpdateResetToken(db *gorm.DB, id uint, token string, expiresAt *time.Time) error
	MarkEmailVerified(db *gorm.DB, id uint) error
	GetRoleByName(db *gorm.DB, name models.RoleName) (*models.Role, error)
}

type UserRepositoryImpl struct {
	BaseRepository[models.User]
}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.Preload("Role").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Role").
		First(&user, "LOWER(email) = LOWER(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByPhone(db *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	err := db.Preload("Role").First(&user, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmailOrPhone matches the identifier against email
// (case-insensitive) or phone in one query.
func (r *UserRepositoryImpl) GetByEmailOrPhone(db *gorm.DB, identifier string) (*models.User, error) {
	var user models.User
	err := db.Preload("Role").
		First(&user, "LOWER(email) = LOWER(?) OR phone = ?", identifier, identifier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByRefreshToken only matches tokens whose stored expiry is still in
// the future. An expired token is indistinguishable from a missing one.
func (r *UserRepositoryImpl) GetByRefreshToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Preload("Role").
		First(&user, "refresh_token = ? AND refresh_token <> '' AND refresh_token_expires_at > ?", token, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "verification_token = ? AND verification_token <> '' AND verification_token_expires_at > ?", token, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "reset_token = ? AND reset_token <> '' AND reset_token_expires_at > ?", token, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Role").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) GetByRole(db *gorm.DB, roleID uint) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Role").Where("role_id = ?", roleID).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) GetActive(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Role").Where("is_active = ?", true).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) GetVerified(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Role").Where("is_verified = ?", true).Find(&users).Error
	return users, err
}

// GetUsersWithFilter applies the optional criteria, counts before
// pagination, then returns one page plus the total.
func (r *UserRepositoryImpl) GetUsersWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", search, search)
	}
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.City != "" {
		query = query.Where("location_city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "id"
	switch filter.SortBy {
	case "name":
		order = "name"
	case "email":
		order = "email"
	case "createdAt":
		order = "created_at"
	}
	if filter.SortDesc && order != "id" {
		order += " DESC"
	}

	var users []models.User
	err := query.Preload("Role").
		Order(order).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&users).Error

	return users, total, err
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", user.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) IsEmailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) IsPhoneTaken(db *gorm.DB, phone string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, id uint, passwordHash string) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"password_hash": passwordHash,
	})
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, isActive, isVerified bool) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"is_active":   isActive,
		"is_verified": isVerified,
	})
}

// UpdateRefreshToken overwrites the stored refresh token. Last write
// wins: concurrent logins for one account are not serialized.
func (r *UserRepositoryImpl) UpdateRefreshToken(db *gorm.DB, id uint, token string, expiresAt time.Time) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"refresh_token":            token,
		"refresh_token_expires_at": expiresAt,
	})
}

// RevokeRefreshToken clears and backdates whichever account holds the
// token, expiry included: a session must be revocable after its refresh
// token has lapsed. Matching nothing is not an error.
func (r *UserRepositoryImpl) RevokeRefreshToken(db *gorm.DB, token string) error {
	return db.Model(&models.User{}).
		Where("refresh_token = ?", token).
		Updates(map[string]interface{}{
			"refresh_token":            "",
			"refresh_token_expires_at": time.Now().Add(-time.Hour),
		}).Error
}

func (r *UserRepositoryImpl) UpdateVerificationToken(db *gorm.DB, id uint, token string, expiresAt time.Time) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"verification_token":            token,
		"verification_token_expires_at": expiresAt,
	})
}

func (r *UserRepositoryImpl) UpdateResetToken(db *gorm.DB, id uint, token string, expiresAt *time.Time) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	})
}

// MarkEmailVerified flips the verified flag and clears the verification
// token so it cannot be replayed.
func (r *UserRepositoryImpl) MarkEmailVerified(db *gorm.DB, id uint) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"is_verified":                   true,
		"verification_token":            "",
		"verification_token_expires_at": nil,
	})
}

func (r *UserRepositoryImpl) GetRoleByName(db *gorm.DB, name models.RoleName) (*models.Role, error) {
	var role models.Role
	err := db.First(&role, "LOWER(name) = LOWER(?)", string(name)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *UserRepositoryImpl) updateColumns(db *gorm.DB, id uint, columns map[string]interface{}) error {
	columns["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

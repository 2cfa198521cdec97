package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/utils"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/pkg/apperrors"
)

// UserService owns account reads and administrative updates.
// Registration and credential changes live in AuthService.
type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(db *gorm.DB, id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserService) GetByEmail(db *gorm.DB, email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// GetByPhone normalizes the number before the lookup so formatted
// input finds the stored record.
func (s *UserService) GetByPhone(db *gorm.DB, phone string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByPhone(db, utils.NormalizePhoneNumber(phone))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// List applies the optional filter criteria and returns one page with
// the pagination envelope filled in.
func (s *UserService) List(db *gorm.DB, req *dto.UserFilterRequest) (*dto.PagedResult[*dto.UserResponse], error) {
	filter := req.ToFilter()

	users, total, err := s.userRepo.GetUsersWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, dto.NewUserResponse(&users[i]))
	}
	return dto.NewPagedResult(data, total, filter.Page, filter.PageSize), nil
}

// Update applies the non-nil fields of the request. Phone numbers are
// normalized and checked for uniqueness before the write.
func (s *UserService) Update(db *gorm.DB, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		phone := utils.NormalizePhoneNumber(*req.Phone)
		if phone != "" && phone != user.Phone {
			taken, err := s.userRepo.IsPhoneTaken(db, phone)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if taken {
				return nil, apperrors.ErrPhoneAlreadyExists
			}
		}
		user.Phone = phone
	}
	if req.LocationAddress != nil {
		user.LocationAddress = *req.LocationAddress
	}
	if req.LocationCity != nil {
		user.LocationCity = *req.LocationCity
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user updated", "user_id", id)
	return dto.NewUserResponse(user), nil
}

// UpdateStatus flips the active and verified flags in one write.
func (s *UserService) UpdateStatus(db *gorm.DB, id uint, req *dto.UpdateUserStatusRequest) error {
	err := s.userRepo.UpdateStatus(db, id, req.IsActive, req.IsVerified)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.Info("user status updated", "user_id", id,
		"is_active", req.IsActive, "is_verified", req.IsVerified)
	return nil
}

func (s *UserService) Delete(db *gorm.DB, id uint) error {
	err := s.userRepo.Delete(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.Info("user deleted", "user_id", id)
	return nil
}

// GetByRole lists the accounts carrying a role name.
func (s *UserService) GetByRole(db *gorm.DB, roleName models.RoleName) ([]*dto.UserResponse, error) {
	if !models.ValidRole(roleName) {
		return nil, apperrors.NewBadRequestError("Unknown role")
	}

	role, err := s.userRepo.GetRoleByName(db, roleName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []*dto.UserResponse{}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	users, err := s.userRepo.GetByRole(db, role.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

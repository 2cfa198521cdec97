package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/pkg/apperrors"
)

// KeywordService owns the keyword catalog.
type KeywordService struct {
	keywordRepo repositories.KeywordRepository
}

func NewKeywordService(keywordRepo repositories.KeywordRepository) *KeywordService {
	return &KeywordService{keywordRepo: keywordRepo}
}

func (s *KeywordService) GetByID(db *gorm.DB, id uint) (*dto.KeywordResponse, error) {
	keyword, err := s.keywordRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrKeywordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewKeywordResponse(keyword), nil
}

func (s *KeywordService) GetAll(db *gorm.DB) ([]*dto.KeywordResponse, error) {
	keywords, err := s.keywordRepo.GetAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewKeywordResponseList(keywords), nil
}

// List returns one page of keywords ordered by name.
func (s *KeywordService) List(db *gorm.DB, req *dto.PagedRequest) (*dto.PagedResult[*dto.KeywordResponse], error) {
	req.Normalize()

	keywords, err := s.keywordRepo.GetPaged(db, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.keywordRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewPagedResult(dto.NewKeywordResponseList(keywords), total, req.PageNumber, req.PageSize), nil
}

// GetByBlog lists the keywords linked to a post.
func (s *KeywordService) GetByBlog(db *gorm.DB, blogID uint) ([]*dto.KeywordResponse, error) {
	keywords, err := s.keywordRepo.GetByBlog(db, blogID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewKeywordResponseList(keywords), nil
}

// Create stores a keyword. Names are unique case-insensitively; a
// duplicate is a conflict.
func (s *KeywordService) Create(db *gorm.DB, req *dto.CreateKeywordRequest) (*dto.KeywordResponse, error) {
	keyword := &models.Keyword{Name: strings.TrimSpace(req.Name)}
	if keyword.Name == "" {
		return nil, apperrors.NewBadRequestError("Keyword name cannot be empty")
	}

	if err := s.keywordRepo.Create(db, keyword); err != nil {
		if errors.Is(err, repositories.ErrKeywordAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("keyword created", "keyword_id", keyword.ID, "name", keyword.Name)
	return dto.NewKeywordResponse(keyword), nil
}

// Update renames a keyword, rejecting names another keyword holds.
func (s *KeywordService) Update(db *gorm.DB, id uint, req *dto.UpdateKeywordRequest) (*dto.KeywordResponse, error) {
	keyword, err := s.keywordRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrKeywordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	keyword.Name = strings.TrimSpace(req.Name)
	if keyword.Name == "" {
		return nil, apperrors.NewBadRequestError("Keyword name cannot be empty")
	}

	if err := s.keywordRepo.Update(db, keyword); err != nil {
		if errors.Is(err, repositories.ErrKeywordAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("keyword updated", "keyword_id", id, "name", keyword.Name)
	return dto.NewKeywordResponse(keyword), nil
}

// Delete removes a keyword and its blog links.
func (s *KeywordService) Delete(db *gorm.DB, id uint) error {
	err := s.keywordRepo.Delete(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrKeywordNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.Info("keyword deleted", "keyword_id", id)
	return nil
}

package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services/dto"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/pkg/apperrors"
)

// BlogService owns blog posts and their keyword associations.
type BlogService struct {
	blogRepo    repositories.BlogRepository
	keywordRepo repositories.KeywordRepository
}

func NewBlogService(blogRepo repositories.BlogRepository, keywordRepo repositories.KeywordRepository) *BlogService {
	return &BlogService{
		blogRepo:    blogRepo,
		keywordRepo: keywordRepo,
	}
}

func (s *BlogService) GetByID(db *gorm.DB, id uint) (*dto.BlogResponse, error) {
	blog, err := s.blogRepo.GetWithKeywords(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewBlogResponse(blog), nil
}

// List returns one page of posts, newest first, with the pagination
// envelope filled in.
func (s *BlogService) List(db *gorm.DB, req *dto.PagedRequest) (*dto.PagedResult[*dto.BlogResponse], error) {
	req.Normalize()

	blogs, err := s.blogRepo.GetPagedWithKeywords(db, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.blogRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewPagedResult(dto.NewBlogResponseList(blogs), total, req.PageNumber, req.PageSize), nil
}

// ListActive returns one page of published posts only.
func (s *BlogService) ListActive(db *gorm.DB, req *dto.PagedRequest) (*dto.PagedResult[*dto.BlogResponse], error) {
	req.Normalize()

	blogs, err := s.blogRepo.GetActivePaged(db, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.blogRepo.CountActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewPagedResult(dto.NewBlogResponseList(blogs), total, req.PageNumber, req.PageSize), nil
}

// ListByAuthor returns one page of an author's posts.
func (s *BlogService) ListByAuthor(db *gorm.DB, authorID uint, req *dto.PagedRequest) (*dto.PagedResult[*dto.BlogResponse], error) {
	req.Normalize()

	blogs, err := s.blogRepo.GetByAuthorPaged(db, authorID, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.blogRepo.CountByAuthor(db, authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewPagedResult(dto.NewBlogResponseList(blogs), total, req.PageNumber, req.PageSize), nil
}

// ListByKeyword returns one page of the posts tagged with a keyword.
func (s *BlogService) ListByKeyword(db *gorm.DB, keywordID uint, req *dto.PagedRequest) (*dto.PagedResult[*dto.BlogResponse], error) {
	req.Normalize()

	if _, err := s.keywordRepo.GetByID(db, keywordID); err != nil {
		if errors.Is(err, repositories.ErrKeywordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	blogs, err := s.blogRepo.GetByKeywordPaged(db, keywordID, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.blogRepo.CountByKeyword(db, keywordID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewPagedResult(dto.NewBlogResponseList(blogs), total, req.PageNumber, req.PageSize), nil
}

// Create stores a post and links its keywords, creating missing
// keywords on the fly.
func (s *BlogService) Create(db *gorm.DB, authorID uint, req *dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	blog := &models.Blog{
		Title:        req.Title,
		ThumbnailURL: req.ThumbnailURL,
		Content:      req.Content,
		IsActive:     true,
		AuthorID:     authorID,
	}

	if err := s.blogRepo.Create(db, blog); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.attachKeywords(db, blog.ID, req.Keywords); err != nil {
		return nil, err
	}

	created, err := s.blogRepo.GetWithKeywords(db, blog.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("blog created", "blog_id", blog.ID, "author_id", authorID)
	return dto.NewBlogResponse(created), nil
}

// Update applies the non-nil fields. A non-nil Keywords slice replaces
// the post's whole keyword set.
func (s *BlogService) Update(db *gorm.DB, id uint, req *dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	blog, err := s.blogRepo.GetWithKeywords(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.ThumbnailURL != nil {
		blog.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.IsActive != nil {
		blog.IsActive = *req.IsActive
	}

	if err := s.blogRepo.Update(db, blog); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Keywords != nil {
		for _, kw := range blog.Keywords {
			err := s.blogRepo.RemoveKeyword(db, id, kw.ID)
			if err != nil && !errors.Is(err, repositories.ErrKeywordLinkAbsent) {
				return nil, apperrors.InternalError(err)
			}
		}
		if err := s.attachKeywords(db, id, *req.Keywords); err != nil {
			return nil, err
		}
	}

	updated, err := s.blogRepo.GetWithKeywords(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("blog updated", "blog_id", id)
	return dto.NewBlogResponse(updated), nil
}

func (s *BlogService) Delete(db *gorm.DB, id uint) error {
	err := s.blogRepo.Delete(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.Info("blog deleted", "blog_id", id)
	return nil
}

// AddKeyword links an existing keyword to a post. Linking a keyword the
// post already carries is a conflict, not a silent no-op.
func (s *BlogService) AddKeyword(db *gorm.DB, blogID, keywordID uint) error {
	err := s.blogRepo.AddKeyword(db, blogID, keywordID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrBlogNotFound),
		errors.Is(err, repositories.ErrKeywordNotFound):
		return apperrors.ErrNotFound(err)
	case errors.Is(err, repositories.ErrKeywordLinkExists):
		return apperrors.ErrConflict(err, "blog", "Keyword is already linked to this blog")
	default:
		return apperrors.InternalError(err)
	}
}

// RemoveKeyword unlinks a keyword from a post.
func (s *BlogService) RemoveKeyword(db *gorm.DB, blogID, keywordID uint) error {
	err := s.blogRepo.RemoveKeyword(db, blogID, keywordID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrKeywordLinkAbsent):
		return apperrors.ErrNotFound(err)
	default:
		return apperrors.InternalError(err)
	}
}

func (s *BlogService) attachKeywords(db *gorm.DB, blogID uint, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		keyword, err := s.keywordRepo.GetOrCreate(db, name)
		if err != nil {
			return apperrors.InternalError(err)
		}
		err = s.blogRepo.AddKeyword(db, blogID, keyword.ID)
		if err != nil && !errors.Is(err, repositories.ErrKeywordLinkExists) {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

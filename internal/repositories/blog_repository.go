package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	// ErrKeywordLinkExists is returned when the blog already carries the
	// keyword; callers can tell a duplicate from a hard failure.
	ErrKeywordLinkExists = errors.New("keyword already linked to blog")
	ErrKeywordLinkAbsent = errors.New("keyword not linked to blog")
)

type BlogRepository interface {
	GetByID(db *gorm.DB, id uint) (*models.Blog, error)
	GetWithKeywords(db *gorm.DB, id uint) (*models.Blog, error)
	GetAllWithKeywords(db *gorm.DB) ([]models.Blog, error)
	GetPagedWithKeywords(db *gorm.DB, page, size int) ([]models.Blog, error)
	GetActive(db *gorm.DB) ([]models.Blog, error)
	GetActivePaged(db *gorm.DB, page, size int) ([]models.Blog, error)
	GetByAuthor(db *gorm.DB, authorID uint) ([]models.Blog, error)
	GetByAuthorPaged(db *gorm.DB, authorID uint, page, size int) ([]models.Blog, error)
	GetByKeyword(db *gorm.DB, keywordID uint) ([]models.Blog, error)
	GetByKeywordPaged(db *gorm.DB, keywordID uint, page, size int) ([]models.Blog, error)
	Count(db *gorm.DB) (int64, error)
	CountActive(db *gorm.DB) (int64, error)
	CountByAuthor(db *gorm.DB, authorID uint) (int64, error)
	CountByKeyword(db *gorm.DB, keywordID uint) (int64, error)
	Create(db *gorm.DB, blog *models.Blog) error
	Update(db *gorm.DB, blog *models.Blog) error
	Delete(db *gorm.DB, id uint) error
	AddKeyword(db *gorm.DB, blogID, keywordID uint) error
	RemoveKeyword(db *gorm.DB, blogID, keywordID uint) error
}

type BlogRepositoryImpl struct {
	BaseRepository[models.Blog]
}

func NewBlogRepository() BlogRepository {
	return &BlogRepositoryImpl{}
}

func (r *BlogRepositoryImpl) GetByID(db *gorm.DB, id uint) (*models.Blog, error) {
	blog, err := r.BaseRepository.GetByID(db, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBlogNotFound
	}
	return blog, err
}

func (r *BlogRepositoryImpl) GetWithKeywords(db *gorm.DB, id uint) (*models.Blog, error) {
	var blog models.Blog
	err := db.Preload("Keywords").Preload("Author").First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepositoryImpl) GetAllWithKeywords(db *gorm.DB) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetPagedWithKeywords(db *gorm.DB, page, size int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetActive(db *gorm.DB) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetActivePaged(db *gorm.DB, page, size int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetByAuthor(db *gorm.DB, authorID uint) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetByAuthorPaged(db *gorm.DB, authorID uint, page, size int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetByKeyword(db *gorm.DB, keywordID uint) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Joins("JOIN blog_keywords ON blog_keywords.blog_id = blogs.id").
		Where("blog_keywords.keyword_id = ?", keywordID).
		Order("blogs.created_at DESC").
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) GetByKeywordPaged(db *gorm.DB, keywordID uint, page, size int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := db.Preload("Keywords").
		Joins("JOIN blog_keywords ON blog_keywords.blog_id = blogs.id").
		Where("blog_keywords.keyword_id = ?", keywordID).
		Order("blogs.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	return r.BaseRepository.Count(db)
}

func (r *BlogRepositoryImpl) CountActive(db *gorm.DB) (int64, error) {
	return r.CountWhere(db, "is_active = ?", true)
}

func (r *BlogRepositoryImpl) CountByAuthor(db *gorm.DB, authorID uint) (int64, error) {
	return r.CountWhere(db, "author_id = ?", authorID)
}

func (r *BlogRepositoryImpl) CountByKeyword(db *gorm.DB, keywordID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Blog{}).
		Joins("JOIN blog_keywords ON blog_keywords.blog_id = blogs.id").
		Where("blog_keywords.keyword_id = ?", keywordID).
		Count(&count).Error
	return count, err
}

func (r *BlogRepositoryImpl) Create(db *gorm.DB, blog *models.Blog) error {
	// Omit Keywords so associations go through AddKeyword explicitly
	return db.Omit("Keywords").Create(blog).Error
}

func (r *BlogRepositoryImpl) Update(db *gorm.DB, blog *models.Blog) error {
	result := db.Omit("Keywords").Save(blog)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	blog := models.Blog{BaseModel: models.BaseModel{ID: id}}

	// Drop join rows first, then the blog itself
	if err := db.Model(&blog).Association("Keywords").Clear(); err != nil {
		return err
	}

	result := db.Delete(&models.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// AddKeyword links a keyword to a blog. Returns ErrBlogNotFound /
// ErrNotFound when either side is missing and ErrKeywordLinkExists on a
// duplicate, so callers adding keywords in a loop can tell a partial
// failure from a full one.
func (r *BlogRepositoryImpl) AddKeyword(db *gorm.DB, blogID, keywordID uint) error {
	var blogCount int64
	if err := db.Model(&models.Blog{}).Where("id = ?", blogID).Count(&blogCount).Error; err != nil {
		return err
	}
	if blogCount == 0 {
		return ErrBlogNotFound
	}

	var kwCount int64
	if err := db.Model(&models.Keyword{}).Where("id = ?", keywordID).Count(&kwCount).Error; err != nil {
		return err
	}
	if kwCount == 0 {
		return ErrKeywordNotFound
	}

	var linkCount int64
	if err := db.Table("blog_keywords").
		Where("blog_id = ? AND keyword_id = ?", blogID, keywordID).
		Count(&linkCount).Error; err != nil {
		return err
	}
	if linkCount > 0 {
		return ErrKeywordLinkExists
	}

	blog := models.Blog{BaseModel: models.BaseModel{ID: blogID}}
	keyword := models.Keyword{BaseModel: models.BaseModel{ID: keywordID}}
	return db.Model(&blog).Association("Keywords").Append(&keyword)
}

// RemoveKeyword unlinks a keyword from a blog. Removing an absent link
// returns ErrKeywordLinkAbsent.
func (r *BlogRepositoryImpl) RemoveKeyword(db *gorm.DB, blogID, keywordID uint) error {
	var linkCount int64
	if err := db.Table("blog_keywords").
		Where("blog_id = ? AND keyword_id = ?", blogID, keywordID).
		Count(&linkCount).Error; err != nil {
		return err
	}
	if linkCount == 0 {
		return ErrKeywordLinkAbsent
	}

	blog := models.Blog{BaseModel: models.BaseModel{ID: blogID}}
	keyword := models.Keyword{BaseModel: models.BaseModel{ID: keywordID}}
	return db.Model(&blog).Association("Keywords").Delete(&keyword)
}

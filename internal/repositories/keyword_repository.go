package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

var (
	ErrKeywordNotFound      = errors.New("keyword not found")
	ErrKeywordAlreadyExists = errors.New("keyword already exists")
)

type KeywordRepository interface {
	GetByID(db *gorm.DB, id uint) (*models.Keyword, error)
	GetByName(db *gorm.DB, name string) (*models.Keyword, error)
	GetAll(db *gorm.DB) ([]models.Keyword, error)
	GetPaged(db *gorm.DB, page, size int) ([]models.Keyword, error)
	GetByBlog(db *gorm.DB, blogID uint) ([]models.Keyword, error)
	GetOrCreate(db *gorm.DB, name string) (*models.Keyword, error)
	Count(db *gorm.DB) (int64, error)
	Create(db *gorm.DB, keyword *models.Keyword) error
	Update(db *gorm.DB, keyword *models.Keyword) error
	Delete(db *gorm.DB, id uint) error
}

type KeywordRepositoryImpl struct {
	BaseRepository[models.Keyword]
}

func NewKeywordRepository() KeywordRepository {
	return &KeywordRepositoryImpl{}
}

func (r *KeywordRepositoryImpl) GetByID(db *gorm.DB, id uint) (*models.Keyword, error) {
	keyword, err := r.BaseRepository.GetByID(db, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrKeywordNotFound
	}
	return keyword, err
}

func (r *KeywordRepositoryImpl) GetByName(db *gorm.DB, name string) (*models.Keyword, error) {
	var keyword models.Keyword
	err := db.First(&keyword, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeywordNotFound
		}
		return nil, err
	}
	return &keyword, nil
}

func (r *KeywordRepositoryImpl) GetAll(db *gorm.DB) ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := db.Order("name").Find(&keywords).Error
	return keywords, err
}

func (r *KeywordRepositoryImpl) GetPaged(db *gorm.DB, page, size int) ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := db.Order("name").
		Offset((page - 1) * size).Limit(size).
		Find(&keywords).Error
	return keywords, err
}

func (r *KeywordRepositoryImpl) GetByBlog(db *gorm.DB, blogID uint) ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := db.Joins("JOIN blog_keywords ON blog_keywords.keyword_id = keywords.id").
		Where("blog_keywords.blog_id = ?", blogID).
		Order("keywords.name").
		Find(&keywords).Error
	return keywords, err
}

// GetOrCreate returns the keyword with the given name, creating it when
// absent. Name matching is case-insensitive.
func (r *KeywordRepositoryImpl) GetOrCreate(db *gorm.DB, name string) (*models.Keyword, error) {
	keyword, err := r.GetByName(db, name)
	if err == nil {
		return keyword, nil
	}
	if !errors.Is(err, ErrKeywordNotFound) {
		return nil, err
	}

	keyword = &models.Keyword{Name: name}
	if err := db.Create(keyword).Error; err != nil {
		return nil, err
	}
	return keyword, nil
}

func (r *KeywordRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	return r.BaseRepository.Count(db)
}

func (r *KeywordRepositoryImpl) Create(db *gorm.DB, keyword *models.Keyword) error {
	var count int64
	if err := db.Model(&models.Keyword{}).
		Where("LOWER(name) = LOWER(?)", keyword.Name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrKeywordAlreadyExists
	}

	return db.Create(keyword).Error
}

func (r *KeywordRepositoryImpl) Update(db *gorm.DB, keyword *models.Keyword) error {
	var count int64
	if err := db.Model(&models.Keyword{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", keyword.Name, keyword.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrKeywordAlreadyExists
	}

	result := db.Save(keyword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrKeywordNotFound
	}
	return nil
}

func (r *KeywordRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	keyword := models.Keyword{BaseModel: models.BaseModel{ID: id}}

	if err := db.Model(&keyword).Association("Blogs").Clear(); err != nil {
		return err
	}

	result := db.Delete(&models.Keyword{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrKeywordNotFound
	}
	return nil
}

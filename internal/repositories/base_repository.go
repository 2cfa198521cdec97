package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors shared by all repositories.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// BaseRepository gives every entity paged and filtered CRUD access.
// Repositories are stateless: the request-scoped *gorm.DB (the unit of
// work opened by the transaction middleware) is passed into every call,
// so all mutations inside one request share a single commit boundary.
type BaseRepository[T any] struct{}

// GetByID loads one record by primary key.
func (r *BaseRepository[T]) GetByID(db *gorm.DB, id uint) (*T, error) {
	var entity T
	err := db.First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// GetAll loads every record.
func (r *BaseRepository[T]) GetAll(db *gorm.DB) ([]T, error) {
	var entities []T
	err := db.Find(&entities).Error
	return entities, err
}

// GetPaged loads one page. page is 1-based; skip = (page-1)*size.
// Clamping page/size to sane bounds is the service layer's job.
func (r *BaseRepository[T]) GetPaged(db *gorm.DB, page, size int) ([]T, error) {
	var entities []T
	err := db.Offset((page - 1) * size).Limit(size).Find(&entities).Error
	return entities, err
}

// Find loads all records matching the condition.
func (r *BaseRepository[T]) Find(db *gorm.DB, query interface{}, args ...interface{}) ([]T, error) {
	var entities []T
	err := db.Where(query, args...).Find(&entities).Error
	return entities, err
}

// FindPaged loads one page of records matching the condition.
func (r *BaseRepository[T]) FindPaged(db *gorm.DB, page, size int, query interface{}, args ...interface{}) ([]T, error) {
	var entities []T
	err := db.Where(query, args...).
		Offset((page - 1) * size).Limit(size).
		Find(&entities).Error
	return entities, err
}

// First loads the first record matching the condition.
func (r *BaseRepository[T]) First(db *gorm.DB, query interface{}, args ...interface{}) (*T, error) {
	var entity T
	err := db.Where(query, args...).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Add inserts a record.
func (r *BaseRepository[T]) Add(db *gorm.DB, entity *T) error {
	return db.Create(entity).Error
}

// AddRange inserts several records in one statement.
func (r *BaseRepository[T]) AddRange(db *gorm.DB, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return db.Create(&entities).Error
}

// Update saves all fields of the record.
func (r *BaseRepository[T]) Update(db *gorm.DB, entity *T) error {
	return db.Save(entity).Error
}

// Delete removes the record.
func (r *BaseRepository[T]) Delete(db *gorm.DB, entity *T) error {
	return db.Delete(entity).Error
}

// DeleteByID removes a record by primary key.
func (r *BaseRepository[T]) DeleteByID(db *gorm.DB, id uint) error {
	var entity T
	result := db.Delete(&entity, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether any record matches the condition.
func (r *BaseRepository[T]) Exists(db *gorm.DB, query interface{}, args ...interface{}) (bool, error) {
	var count int64
	var entity T
	err := db.Model(&entity).Where(query, args...).Limit(1).Count(&count).Error
	return count > 0, err
}

// Count returns the total number of records.
func (r *BaseRepository[T]) Count(db *gorm.DB) (int64, error) {
	var count int64
	var entity T
	err := db.Model(&entity).Count(&count).Error
	return count, err
}

// CountWhere returns the number of records matching the condition.
func (r *BaseRepository[T]) CountWhere(db *gorm.DB, query interface{}, args ...interface{}) (int64, error) {
	var count int64
	var entity T
	err := db.Model(&entity).Where(query, args...).Count(&count).Error
	return count, err
}

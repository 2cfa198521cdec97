package models

type Blog struct {
	BaseModel
	Title        string `gorm:"size:255;not null" json:"title"`
	ThumbnailURL string `gorm:"size:255" json:"thumbnail_url,omitempty"`
	Content      string `gorm:"type:text" json:"content"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	AuthorID uint  `gorm:"index;not null" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Keywords []Keyword `gorm:"many2many:blog_keywords" json:"keywords,omitempty"`
}

type Keyword struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Blogs []Blog `gorm:"many2many:blog_keywords" json:"-"`
}

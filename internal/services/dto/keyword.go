package dto

import "github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"

// KeywordResponse is the public view of a keyword.
type KeywordResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewKeywordResponse maps a keyword record to its public view.
func NewKeywordResponse(kw *models.Keyword) *KeywordResponse {
	return &KeywordResponse{ID: kw.ID, Name: kw.Name}
}

// NewKeywordResponseList maps a slice of keyword records.
func NewKeywordResponseList(keywords []models.Keyword) []*KeywordResponse {
	out := make([]*KeywordResponse, 0, len(keywords))
	for i := range keywords {
		out = append(out, NewKeywordResponse(&keywords[i]))
	}
	return out
}

// CreateKeywordRequest creates a keyword; names are unique
// case-insensitively.
type CreateKeywordRequest struct {
	Name string `json:"name" binding:"required,max=100" validate:"required,max=100"`
}

// UpdateKeywordRequest renames a keyword.
type UpdateKeywordRequest struct {
	Name string `json:"name" binding:"required,max=100" validate:"required,max=100"`
}

package services

import "github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/pkg/email"

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService    *AuthService
	UserService    *UserService
	BlogService    *BlogService
	KeywordService *KeywordService
	EmailService   email.Provider
}

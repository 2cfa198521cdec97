package handlers

// AppHandlers holds every handler the router registers.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	BlogHandler    *BlogHandler
	KeywordHandler *KeywordHandler
}

package dto

// PageRequest is the shared cursor/limit query pair for keyset-paged listings.
type PageRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"`
}

package dto

// JoinRequest represents a registration request
type JoinRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=64"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateCategoryRequest represents a category creation request.
// ParentID nil creates a root category.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=64"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// CreatePostRequest represents a post creation request
type CreatePostRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Slug       string `json:"slug" binding:"required,min=1,max=128"`
	Title      string `json:"title" binding:"required,min=1,max=256"`
	Body       string `json:"body" binding:"required"`
	Status     string `json:"status" binding:"omitempty,oneof=draft published"`
}

// UpdatePostRequest carries a partial update. Nil fields stay unchanged.
type UpdatePostRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=256"`
	Body   *string `json:"body" binding:"omitempty,min=1"`
	Status *string `json:"status" binding:"omitempty,oneof=draft published"`
}

// ListPostsQuery holds the query-string filters of the post listing.
// Zero values mean "no filter".
type ListPostsQuery struct {
	CategoryID   string `form:"category_id" binding:"omitempty,uuid"`
	CategoryName string `form:"category"`
	AuthorID     string `form:"author_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=draft published"`
	Search       string `form:"search"`
	From         string `form:"from"`
	To           string `form:"to"`
	Sort         string `form:"sort"`
	Order        string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1"`
}

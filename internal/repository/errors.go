package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a member with an existing email
	ErrDuplicateEmail = errors.New("member with this email already exists")

	// ErrDuplicateToken is returned when trying to create a token with an existing hash
	ErrDuplicateToken = errors.New("token with this hash already exists")

	// ErrDuplicateCategory is returned when a sibling category with the same name exists
	ErrDuplicateCategory = errors.New("category with this name already exists under the same parent")

	// ErrDuplicateSlug is returned when the slug is already used within the category
	ErrDuplicateSlug = errors.New("post with this slug already exists in the category")
)

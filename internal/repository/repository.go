package repository

import (
	"github.com/talkboard/board-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	Member   MemberRepository
	Token    TokenRepository
	Category CategoryRepository
	Post     PostRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		Member:   NewMemberRepository(db),
		Token:    NewTokenRepository(db),
		Category: NewCategoryRepository(db),
		Post:     NewPostRepository(db),
	}
}

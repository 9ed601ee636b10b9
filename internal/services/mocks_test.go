package services

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/repositories"
	"github.com/anonto42/vinahome/backend/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n models.Notification) {
	m.Called(ctx, n)
}

// failingPosts fails writes with err and delegates reads.
type failingPosts struct {
	repositories.PostRepository
	err error
}

func (f failingPosts) CreatePost(context.Context, *models.Post) error { return f.err }

func storeRepos(st *memory.Store) Repositories {
	return Repositories{Posts: st, Comments: st, Likes: st, Users: st, Locations: st}
}

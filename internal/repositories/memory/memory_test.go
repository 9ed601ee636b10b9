package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repositories.PostRepository         = (*Store)(nil)
	_ repositories.CommentRepository      = (*Store)(nil)
	_ repositories.LikeRepository         = (*Store)(nil)
	_ repositories.UserRepository         = (*Store)(nil)
	_ repositories.LocationRepository     = (*Store)(nil)
	_ repositories.NotificationRepository = (*Store)(nil)
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.AddCity(models.City{ID: "hcmc", Name: "Ho Chi Minh City"})
	return s
}

func TestConcurrentToggleLike(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	require.NoError(t, s.CreatePost(ctx, &models.Post{ID: "p1", CityID: "hcmc", Category: models.CategoryFree}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleLike(ctx, "p1", "u1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := s.GetPostByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.LikeCount)
}

func TestListPostsPaging(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreatePost(ctx, &models.Post{
			ID: id, CityID: "hcmc", Category: models.CategoryFree, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := s.ListPosts(ctx, models.PostFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)

	page, err = s.ListPosts(ctx, models.PostFilter{Offset: 5, Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, page)

	page, err = s.ListPosts(ctx, models.PostFilter{Offset: -16, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)
}

func TestUpsertUserKeepsEmail(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.UpsertUser(ctx, &models.User{ID: "u1", Email: "u1@example.com"}))
	require.NoError(t, s.UpsertUser(ctx, &models.User{ID: "u1"}))

	u, ok := s.User("u1")
	require.True(t, ok)
	assert.Equal(t, "u1@example.com", u.Email)

	require.NoError(t, s.UpsertUser(ctx, &models.User{ID: "u1", Email: "new@example.com"}))
	u, _ = s.User("u1")
	assert.Equal(t, "new@example.com", u.Email)
}

func TestFindNearbyApartments(t *testing.T) {
	s := seeded(t)
	s.AddApartment(models.Apartment{ID: "near", CityID: "hcmc", Name: "Vinhomes", Latitude: 10.7946, Longitude: 106.7218})
	s.AddApartment(models.Apartment{ID: "far", CityID: "hcmc", Name: "Phu My Hung", Latitude: 10.7296, Longitude: 106.7190})

	found, err := s.FindNearbyApartments(context.Background(), 10.7946, 106.7218, 3, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "near", found[0].ID)

	found, err = s.FindNearbyApartments(context.Background(), 10.7946, 106.7218, 10, 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.InDelta(t, 7.2, found[1].DistanceKm, 0.3)
}

func TestNotifications(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateNotification(ctx, &models.Notification{RecipientID: "u1", Type: models.NotificationLike}))
	}
	other := &models.Notification{RecipientID: "u2", Type: models.NotificationComment}
	require.NoError(t, s.CreateNotification(ctx, other))

	items, total, err := s.GetByRecipientID(ctx, "u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, s.MarkAsRead(ctx, "u1", other.ID.Hex()), apperrors.NotFound)
	require.NoError(t, s.MarkAsRead(ctx, "u1", items[0].ID.Hex()))

	unread, err := s.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, s.MarkAllAsRead(ctx, "u1"))
	unread, err = s.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "user",
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "community",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = postgresC.Terminate(ctx) })

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)
	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := "postgres://user:password@" + host + ":" + port.Port() + "/community?sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedPost(t *testing.T, repo *PostgresPostRepository, authorID string, category models.Category, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		CityID:    "hcmc",
		Category:  category,
		Title:     "title",
		Content:   "content long enough",
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.CreatePost(context.Background(), post))
	return post
}

func TestPostgresRepositories(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	users := NewPostgresUserRepository(db)
	posts := NewPostgresPostRepository(db)
	comments := NewPostgresCommentRepository(db)
	likes := NewPostgresLikeRepository(db)
	locations := NewPostgresLocationRepository(db)

	require.NoError(t, db.Create(&models.City{ID: "hcmc", Name: "Ho Chi Minh City", NameKo: "호치민"}).Error)
	require.NoError(t, db.Create(&models.Apartment{
		ID: uuid.NewString(), CityID: "hcmc", Name: "Vinhomes Central Park",
		Latitude: 10.7946, Longitude: 106.7218,
	}).Error)
	require.NoError(t, db.Create(&models.Apartment{
		ID: uuid.NewString(), CityID: "hcmc", Name: "Masteri Thao Dien",
		Latitude: 10.8023, Longitude: 106.7405,
	}).Error)
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, users.UpsertUser(ctx, &models.User{ID: id, Email: id + "@example.com"}))
	}

	t.Run("UpsertUser refreshes email", func(t *testing.T) {
		require.NoError(t, users.UpsertUser(ctx, &models.User{ID: "u1", Email: "new@example.com"}))
		var u models.User
		require.NoError(t, db.First(&u, "id = ?", "u1").Error)
		assert.Equal(t, "new@example.com", u.Email)
	})

	t.Run("UpsertUser keeps email when the token has none", func(t *testing.T) {
		require.NoError(t, users.UpsertUser(ctx, &models.User{ID: "u1"}))
		var u models.User
		require.NoError(t, db.First(&u, "id = ?", "u1").Error)
		assert.Equal(t, "new@example.com", u.Email)
	})

	t.Run("CreatePost rejects unknown city", func(t *testing.T) {
		err := posts.CreatePost(ctx, &models.Post{
			ID: uuid.NewString(), AuthorID: "u1", CityID: "nowhere",
			Category: models.CategoryFree, Title: "t", Content: "content long enough",
		})
		assert.ErrorIs(t, err, apperrors.Validation)
	})

	base := time.Now().Add(-time.Hour).Truncate(time.Microsecond)
	free1 := seedPost(t, posts, "u1", models.CategoryFree, base)
	free2 := seedPost(t, posts, "u2", models.CategoryFree, base.Add(time.Minute))
	qna := seedPost(t, posts, "u1", models.CategoryQnA, base.Add(2*time.Minute))

	t.Run("ToggleLike inserts then removes", func(t *testing.T) {
		res, err := likes.ToggleLike(ctx, free1.ID, "u2")
		require.NoError(t, err)
		assert.Equal(t, models.LikeResult{Liked: true, Count: 1}, *res)

		liked, err := likes.HasUserLikedPost(ctx, free1.ID, "u2")
		require.NoError(t, err)
		assert.True(t, liked)

		res, err = likes.ToggleLike(ctx, free1.ID, "u2")
		require.NoError(t, err)
		assert.Equal(t, models.LikeResult{Liked: false, Count: 0}, *res)
	})

	t.Run("concurrent toggles keep count consistent", func(t *testing.T) {
		var wg sync.WaitGroup
		for _, u := range []string{"u1", "u2", "u3"} {
			wg.Add(1)
			go func(u string) {
				defer wg.Done()
				_, err := likes.ToggleLike(ctx, free2.ID, u)
				assert.NoError(t, err)
			}(u)
		}
		wg.Wait()

		var rows int64
		require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", free2.ID).Count(&rows).Error)
		p, err := posts.GetPostByID(ctx, free2.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), rows)
		assert.Equal(t, 3, p.LikeCount)
	})

	t.Run("ListPosts popular order and category filter", func(t *testing.T) {
		list, err := posts.ListPosts(ctx, models.PostFilter{CityID: "hcmc", Category: models.CategoryFree, Sort: models.SortPopular})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, free2.ID, list[0].ID)
		assert.Equal(t, free1.ID, list[1].ID)

		list, err = posts.ListPosts(ctx, models.PostFilter{CityID: "hcmc", Sort: models.SortLatest})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, qna.ID, list[0].ID)
	})

	t.Run("LikedPostIDs", func(t *testing.T) {
		liked, err := likes.LikedPostIDs(ctx, "u3", []string{free1.ID, free2.ID, qna.ID})
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{free2.ID: true}, liked)
	})

	t.Run("CountPostsByCategory", func(t *testing.T) {
		counts, err := posts.CountPostsByCategory(ctx, models.PostFilter{CityID: "hcmc", Category: models.CategoryFree})
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts.Total)
		assert.Equal(t, int64(2), counts.ByCategory[models.CategoryFree])
		assert.Equal(t, int64(1), counts.ByCategory[models.CategoryQnA])
		assert.Equal(t, int64(0), counts.ByCategory[models.CategorySecondhand])
	})

	t.Run("deleting a comment cascades to replies", func(t *testing.T) {
		parent := &models.Comment{ID: uuid.NewString(), PostID: qna.ID, AuthorID: "u2", Content: "question?"}
		require.NoError(t, comments.CreateComment(ctx, parent))
		reply := &models.Comment{ID: uuid.NewString(), PostID: qna.ID, AuthorID: "u1", ParentID: &parent.ID, Content: "answer"}
		require.NoError(t, comments.CreateComment(ctx, reply))

		list, err := comments.GetCommentsByPostID(ctx, qna.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		require.NoError(t, comments.DeleteComment(ctx, parent.ID))
		_, err = comments.GetCommentByID(ctx, reply.ID)
		assert.ErrorIs(t, err, apperrors.NotFound)

		assert.ErrorIs(t, comments.DeleteComment(ctx, parent.ID), apperrors.NotFound)
	})

	t.Run("soft deleted post disappears", func(t *testing.T) {
		require.NoError(t, posts.SoftDeletePost(ctx, free1.ID))

		_, err := posts.GetPostByID(ctx, free1.ID)
		assert.ErrorIs(t, err, apperrors.NotFound)

		_, err = likes.ToggleLike(ctx, free1.ID, "u3")
		assert.ErrorIs(t, err, apperrors.NotFound)

		counts, err := posts.CountPostsByCategory(ctx, models.PostFilter{CityID: "hcmc"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts.ByCategory[models.CategoryFree])
	})

	t.Run("FindNearbyApartments", func(t *testing.T) {
		found, err := locations.FindNearbyApartments(ctx, 10.7946, 106.7218, 1, 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Vinhomes Central Park", found[0].Name)
		assert.InDelta(t, 0, found[0].DistanceKm, 0.01)

		found, err = locations.FindNearbyApartments(ctx, 10.7946, 106.7218, 5, 10)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("ListApartmentsByCity", func(t *testing.T) {
		apts, err := locations.ListApartmentsByCity(ctx, "hcmc")
		require.NoError(t, err)
		assert.Len(t, apts, 2)

		_, err = locations.GetCity(ctx, "hanoi")
		assert.ErrorIs(t, err, apperrors.NotFound)
	})
}

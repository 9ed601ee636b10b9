// Package memory keeps the whole community board in process memory. It backs
// STORAGE=memory for local runs and the handler and service tests.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type likeKey struct {
	postID string
	userID string
}

// Store implements every repository interface of the parent package.
type Store struct {
	mu            sync.RWMutex
	users         map[string]models.User
	cities        map[string]models.City
	apartments    map[string]models.Apartment
	posts         map[string]*models.Post
	comments      map[string]*models.Comment
	likes         map[likeKey]time.Time
	notifications []*models.Notification
}

func New() *Store {
	return &Store{
		users:      make(map[string]models.User),
		cities:     make(map[string]models.City),
		apartments: make(map[string]models.Apartment),
		posts:      make(map[string]*models.Post),
		comments:   make(map[string]*models.Comment),
		likes:      make(map[likeKey]time.Time),
	}
}

// AddCity seeds reference data.
func (s *Store) AddCity(city models.City) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities[city.ID] = city
}

// AddApartment seeds reference data.
func (s *Store) AddApartment(apt models.Apartment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apartments[apt.ID] = apt
}

func (s *Store) SaveCity(ctx context.Context, city *models.City) error {
	s.AddCity(*city)
	return nil
}

func (s *Store) SaveApartment(ctx context.Context, apt *models.Apartment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cities[apt.CityID]; !ok {
		return apperrors.Invalid("unknown city")
	}
	s.apartments[apt.ID] = *apt
	return nil
}

func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
		if user.Email == "" {
			user.Email = existing.Email
		}
	}
	s.users[user.ID] = *user
	return nil
}

// User returns the mirrored principal with id.
func (s *Store) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cities[post.CityID]; !ok {
		return apperrors.Invalid("unknown city or apartment")
	}
	if post.ApartmentID != nil {
		if _, ok := s.apartments[*post.ApartmentID]; !ok {
			return apperrors.Invalid("unknown city or apartment")
		}
	}
	p := *post
	s.posts[p.ID] = &p
	return nil
}

func (s *Store) visiblePost(id string) (*models.Post, bool) {
	p, ok := s.posts[id]
	if !ok || p.IsDeleted {
		return nil, false
	}
	return p, true
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.visiblePost(id)
	if !ok {
		return nil, apperrors.NotFoundf("post not found")
	}
	cp := *p
	return &cp, nil
}

func matches(p *models.Post, f models.PostFilter) bool {
	if p.IsDeleted {
		return false
	}
	if f.CityID != "" && p.CityID != f.CityID {
		return false
	}
	if f.ApartmentID != "" && (p.ApartmentID == nil || *p.ApartmentID != f.ApartmentID) {
		return false
	}
	return true
}

// ListPosts orders like the SQL repository: popular by like count, then
// creation time, then id, all descending.
func (s *Store) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := []models.Post{}
	for _, p := range s.posts {
		if !matches(p, filter) || (filter.Category != "" && p.Category != filter.Category) {
			continue
		}
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if filter.Sort == models.SortPopular && a.LikeCount != b.LikeCount {
			return a.LikeCount > b.LikeCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Offset >= len(posts) {
		return []models.Post{}, nil
	}
	posts = posts[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(posts) {
		posts = posts[:filter.Limit]
	}
	return posts, nil
}

func (s *Store) CountPostsByCategory(ctx context.Context, filter models.PostFilter) (*models.CategoryCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := &models.CategoryCounts{ByCategory: make(map[models.Category]int64, len(models.AllCategories))}
	for _, c := range models.AllCategories {
		counts.ByCategory[c] = 0
	}
	for _, p := range s.posts {
		if matches(p, filter) {
			counts.ByCategory[p.Category]++
			counts.Total++
		}
	}
	return counts, nil
}

func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.visiblePost(post.ID)
	if !ok {
		return apperrors.NotFoundf("post not found")
	}
	p.Category = post.Category
	p.Title = post.Title
	p.Content = post.Content
	p.UpdatedAt = post.UpdatedAt
	return nil
}

func (s *Store) SoftDeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.visiblePost(id)
	if !ok {
		return apperrors.NotFoundf("post not found")
	}
	p.IsDeleted = true
	return nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[comment.PostID]; !ok {
		return apperrors.NotFoundf("post or parent comment not found")
	}
	if comment.ParentID != nil {
		if _, ok := s.comments[*comment.ParentID]; !ok {
			return apperrors.NotFoundf("post or parent comment not found")
		}
	}
	c := *comment
	s.comments[c.ID] = &c
	return nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, apperrors.NotFoundf("comment not found")
	}
	cp := *c
	return &cp, nil
}

func (s *Store) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// DeleteComment removes the comment and, like the parent_id cascade, its replies.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return apperrors.NotFoundf("comment not found")
	}
	delete(s.comments, id)
	for cid, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

// ToggleLike runs under the write lock, which gives it the same isolation as
// the row lock of the SQL repository.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (*models.LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.visiblePost(postID)
	if !ok {
		return nil, apperrors.NotFoundf("post not found")
	}

	key := likeKey{postID: postID, userID: userID}
	_, liked := s.likes[key]
	if liked {
		delete(s.likes, key)
	} else {
		s.likes[key] = time.Now()
	}

	count := 0
	for k := range s.likes {
		if k.postID == postID {
			count++
		}
	}
	p.LikeCount = count
	return &models.LikeResult{Liked: !liked, Count: count}, nil
}

func (s *Store) HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.likes[likeKey{postID: postID, userID: userID}]
	return ok, nil
}

func (s *Store) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	liked := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		if _, ok := s.likes[likeKey{postID: id, userID: userID}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

func (s *Store) ListCities(ctx context.Context) ([]models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cities := make([]models.City, 0, len(s.cities))
	for _, c := range s.cities {
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, nil
}

func (s *Store) GetCity(ctx context.Context, id string) (*models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cities[id]
	if !ok {
		return nil, apperrors.NotFoundf("city not found")
	}
	return &c, nil
}

func (s *Store) ListApartmentsByCity(ctx context.Context, cityID string) ([]models.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	apts := []models.Apartment{}
	for _, a := range s.apartments {
		if a.CityID == cityID {
			apts = append(apts, a)
		}
	}
	sort.Slice(apts, func(i, j int) bool { return apts[i].Name < apts[j].Name })
	return apts, nil
}

func (s *Store) GetApartment(ctx context.Context, id string) (*models.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.apartments[id]
	if !ok {
		return nil, apperrors.NotFoundf("apartment not found")
	}
	return &a, nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func (s *Store) FindNearbyApartments(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.NearbyApartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := []models.NearbyApartment{}
	for _, a := range s.apartments {
		if d := haversineKm(lat, lng, a.Latitude, a.Longitude); d <= radiusKm {
			found = append(found, models.NearbyApartment{Apartment: a, DistanceKm: d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].DistanceKm != found[j].DistanceKm {
			return found[i].DistanceKm < found[j].DistanceKm
		}
		return found[i].ID < found[j].ID
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	cp := *n
	s.notifications = append(s.notifications, &cp)
	return nil
}

// GetByRecipientID pages newest first.
func (s *Store) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mine := []models.Notification{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if n := s.notifications[i]; n.RecipientID == recipientID {
			mine = append(mine, *n)
		}
	}
	total := int64(len(mine))

	start := (page - 1) * limit
	if start >= len(mine) {
		return []models.Notification{}, total, nil
	}
	end := start + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end], total, nil
}

func (s *Store) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID.Hex() == notificationID && n.RecipientID == recipientID {
			n.IsRead = true
			return nil
		}
	}
	return apperrors.NotFoundf("notification not found")
}

func (s *Store) MarkAllAsRead(ctx context.Context, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

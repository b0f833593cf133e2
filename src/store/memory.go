package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/apperrors"
	"chirper/src/models"
)

// Memory backs every store interface with plain maps behind one mutex. It
// keeps the same contract as the Mongo implementation, in particular the
// idempotent set semantics of mirror updates, so service tests exercise the
// real consistency rules without a database.
type Memory struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]*models.User
	posts         map[primitive.ObjectID]*models.Post
	notifications map[primitive.ObjectID]*models.Notification

	// Insertion sequence per record, the tiebreaker for newest-first sorts
	// when createdAt timestamps collide.
	postSeq  map[primitive.ObjectID]int
	notifSeq map[primitive.ObjectID]int
	seq      int
}

func NewMemory() *Memory {
	return &Memory{
		users:         map[primitive.ObjectID]*models.User{},
		posts:         map[primitive.ObjectID]*models.Post{},
		notifications: map[primitive.ObjectID]*models.Notification{},
		postSeq:       map[primitive.ObjectID]int{},
		notifSeq:      map[primitive.ObjectID]int{},
	}
}

// Users returns the UserStore view of the shared state.
func (m *Memory) Users() UserStore { return memoryUsers{m} }

// Posts returns the PostStore view of the shared state.
func (m *Memory) Posts() PostStore { return memoryPosts{m} }

// Notifications returns the NotificationStore view of the shared state.
func (m *Memory) Notifications() NotificationStore { return memoryNotifications{m} }

type memoryUsers struct{ m *Memory }

func (s memoryUsers) Create(ctx context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, existing := range s.m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.Conflictf("Username or email already exists")
		}
	}

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.LikedPosts == nil {
		user.LikedPosts = []primitive.ObjectID{}
	}

	s.m.users[user.Id] = cloneUser(user)
	return nil
}

func (s memoryUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	user, ok := s.m.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("User not found")
	}
	return cloneUser(user), nil
}

func (s memoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, user := range s.m.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.NotFoundf("User not found")
}

func (s memoryUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, user := range s.m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.NotFoundf("User not found")
}

func (s memoryUsers) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	users := []models.User{}
	for _, id := range ids {
		if user, ok := s.m.users[id]; ok {
			users = append(users, *cloneUser(user))
		}
	}
	return users, nil
}

func (s memoryUsers) UpdateFields(ctx context.Context, id primitive.ObjectID, fields Fields) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	user, ok := s.m.users[id]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}

	for field, value := range fields {
		str, _ := value.(string)
		switch field {
		case "username":
			for _, other := range s.m.users {
				if other.Id != id && other.Username == str {
					return apperrors.Conflictf("Username or email already exists")
				}
			}
			user.Username = str
		case "email":
			for _, other := range s.m.users {
				if other.Id != id && other.Email == str {
					return apperrors.Conflictf("Username or email already exists")
				}
			}
			user.Email = str
		case "password":
			user.Password = str
		case "fullname":
			user.FullName = str
		case "bio":
			user.Bio = str
		case "link":
			user.Link = str
		case "profileImg":
			user.ProfileImg = str
		case "coverImg":
			user.CoverImg = str
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (s memoryUsers) AddFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	actor, ok := s.m.users[actorID]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}
	target, ok := s.m.users[targetID]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}

	actor.Following = addID(actor.Following, targetID)
	target.Followers = addID(target.Followers, actorID)
	return nil
}

func (s memoryUsers) RemoveFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	actor, ok := s.m.users[actorID]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}
	target, ok := s.m.users[targetID]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}

	actor.Following = removeID(actor.Following, targetID)
	target.Followers = removeID(target.Followers, actorID)
	return nil
}

func (s memoryUsers) AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	user, ok := s.m.users[userID]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}
	user.LikedPosts = addID(user.LikedPosts, postID)
	return nil
}

func (s memoryUsers) RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	user, ok := s.m.users[userID]
	if !ok {
		return apperrors.NotFoundf("User not found")
	}
	user.LikedPosts = removeID(user.LikedPosts, postID)
	return nil
}

func (s memoryUsers) RemoveLikedPostFromAll(ctx context.Context, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, user := range s.m.users {
		user.LikedPosts = removeID(user.LikedPosts, postID)
	}
	return nil
}

func (s memoryUsers) Sample(ctx context.Context, exclude primitive.ObjectID, n int) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	// Map iteration order is already randomized.
	users := []models.User{}
	for _, user := range s.m.users {
		if user.Id == exclude {
			continue
		}
		users = append(users, *cloneUser(user))
		if len(users) == n {
			break
		}
	}
	return users, nil
}

type memoryPosts struct{ m *Memory }

func (s memoryPosts) Create(ctx context.Context, post *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	s.m.seq++
	s.m.posts[post.Id] = clonePost(post)
	s.m.postSeq[post.Id] = s.m.seq
	return nil
}

func (s memoryPosts) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	post, ok := s.m.posts[id]
	if !ok {
		return nil, apperrors.NotFoundf("Post not found")
	}
	return clonePost(post), nil
}

func (s memoryPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.posts[id]; !ok {
		return apperrors.NotFoundf("Post not found")
	}
	delete(s.m.posts, id)
	delete(s.m.postSeq, id)
	return nil
}

func (s memoryPosts) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	post, ok := s.m.posts[postID]
	if !ok {
		return apperrors.NotFoundf("Post not found")
	}
	post.Likes = addID(post.Likes, userID)
	return nil
}

func (s memoryPosts) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	post, ok := s.m.posts[postID]
	if !ok {
		return apperrors.NotFoundf("Post not found")
	}
	post.Likes = removeID(post.Likes, userID)
	return nil
}

func (s memoryPosts) AppendComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	post, ok := s.m.posts[postID]
	if !ok {
		return apperrors.NotFoundf("Post not found")
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func (s memoryPosts) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.list(func(*models.Post) bool { return true }), nil
}

func (s memoryPosts) ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error) {
	return s.list(func(p *models.Post) bool {
		return containsID(authorIDs, p.UserId)
	}), nil
}

func (s memoryPosts) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	return s.list(func(p *models.Post) bool {
		return containsID(ids, p.Id)
	}), nil
}

func (s memoryPosts) list(match func(*models.Post) bool) []models.Post {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	posts := []models.Post{}
	for _, post := range s.m.posts {
		if match(post) {
			posts = append(posts, *clonePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return s.m.postSeq[posts[i].Id] > s.m.postSeq[posts[j].Id]
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

type memoryNotifications struct{ m *Memory }

func (s memoryNotifications) Insert(ctx context.Context, n *models.Notification) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if n.Id.IsZero() {
		n.Id = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now()

	clone := *n
	s.m.seq++
	s.m.notifications[n.Id] = &clone
	s.m.notifSeq[n.Id] = s.m.seq
	return nil
}

func (s memoryNotifications) ListTo(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	notifications := []models.Notification{}
	for _, n := range s.m.notifications {
		if n.To == userID {
			notifications = append(notifications, *n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return s.m.notifSeq[notifications[i].Id] > s.m.notifSeq[notifications[j].Id]
		}
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s memoryNotifications) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, n := range s.m.notifications {
		if n.To == userID {
			n.Read = true
		}
	}
	return nil
}

func (s memoryNotifications) DeleteAllTo(ctx context.Context, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for id, n := range s.m.notifications {
		if n.To == userID {
			delete(s.m.notifications, id)
			delete(s.m.notifSeq, id)
		}
	}
	return nil
}

// --- helpers ---

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := []primitive.ObjectID{}
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Following = append([]primitive.ObjectID{}, u.Following...)
	clone.Followers = append([]primitive.ObjectID{}, u.Followers...)
	clone.LikedPosts = append([]primitive.ObjectID{}, u.LikedPosts...)
	return &clone
}

func clonePost(p *models.Post) *models.Post {
	clone := *p
	clone.Likes = append([]primitive.ObjectID{}, p.Likes...)
	clone.Comments = append([]models.Comment{}, p.Comments...)
	return &clone
}

package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/apperrors"
	"chirper/src/models"
	"chirper/src/store"
)

// PostService owns posts, their embedded comments, and the mirrored like sets
// shared with user records.
type PostService struct {
	posts    store.PostStore
	users    store.UserStore
	notifier *NotificationService
	media    ObjectStore
	log      *logrus.Logger
}

func NewPostService(posts store.PostStore, users store.UserStore, notifier *NotificationService, media ObjectStore, log *logrus.Logger) *PostService {
	return &PostService{posts: posts, users: users, notifier: notifier, media: media, log: log}
}

// CreatePost stores a new post for the author. An image payload is uploaded
// to the object store before any persistent write; an upload failure aborts
// creation entirely.
func (s *PostService) CreatePost(ctx context.Context, authorID primitive.ObjectID, text string, image []byte, contentType string) (*models.PostDto, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if text == "" && len(image) == 0 {
		return nil, apperrors.Validationf("Post must have text or image")
	}

	var imgURL string
	if len(image) > 0 {
		imgURL, err = s.media.Upload(ctx, image, contentType)
		if err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		UserId: authorID,
		Text:   text,
		Img:    imgURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	dto := s.toDto(post, map[primitive.ObjectID]models.UserDto{authorID: author.ToDto()})
	return &dto, nil
}

// DeletePost removes an owned post. The stored image is deleted best-effort,
// and the post id is cascaded out of every user's likedPosts so no dangling
// reference survives the delete.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID primitive.ObjectID) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserId != actorID {
		return apperrors.Forbiddenf("You are not authorized to delete this post")
	}

	if post.Img != "" {
		if err := s.media.Delete(ctx, post.Img); err != nil {
			s.log.WithError(err).WithField("ref", post.Img).Warn("failed to delete post image")
		}
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	return s.users.RemoveLikedPostFromAll(ctx, postID)
}

// ToggleLike likes the post if the actor has not liked it yet, unlikes it
// otherwise. Both mirror sides (post.likes, actor.likedPosts) change together
// through set operations. Liking someone else's post records a notification;
// unliking and self-likes never do. Returns the resulting like set.
func (s *PostService) ToggleLike(ctx context.Context, actorID, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if hasID(post.Likes, actorID) {
		if err := s.posts.RemoveLike(ctx, postID, actorID); err != nil {
			return nil, err
		}
		if err := s.users.RemoveLikedPost(ctx, actorID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.posts.AddLike(ctx, postID, actorID); err != nil {
			return nil, err
		}
		if err := s.users.AddLikedPost(ctx, actorID, postID); err != nil {
			return nil, err
		}
		if actorID != post.UserId {
			s.notifier.Record(ctx, actorID, post.UserId, models.NotificationTypeLike)
		}
	}

	updated, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Likes, nil
}

// AddComment appends a comment to the post and returns the post with all
// authors resolved. Comments are immutable once created.
func (s *PostService) AddComment(ctx context.Context, actorID, postID primitive.ObjectID, text string) (*models.PostDto, error) {
	if text == "" {
		return nil, apperrors.Validationf("Comment text cannot be empty")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		Id:        primitive.NewObjectID(),
		UserId:    actorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.posts.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

// GetPost returns one post with author and comment authors resolved.
func (s *PostService) GetPost(ctx context.Context, postID primitive.ObjectID) (*models.PostDto, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.resolve(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// ListAll returns every post, newest-first.
func (s *PostService) ListAll(ctx context.Context) ([]models.PostDto, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, posts)
}

// ListByAuthor returns the posts of one user, looked up by username.
func (s *PostService) ListByAuthor(ctx context.Context, username string) ([]models.PostDto, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthors(ctx, []primitive.ObjectID{author.Id})
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, posts)
}

// ListFollowingFeed returns the posts authored by anyone the actor follows.
func (s *PostService) ListFollowingFeed(ctx context.Context, actorID primitive.ObjectID) ([]models.PostDto, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthors(ctx, actor.Following)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, posts)
}

// ListLiked returns the posts in the user's likedPosts set.
func (s *PostService) ListLiked(ctx context.Context, userID primitive.ObjectID) ([]models.PostDto, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, posts)
}

// resolve loads every referenced author once and builds display DTOs.
func (s *PostService) resolve(ctx context.Context, posts []models.Post) ([]models.PostDto, error) {
	authorIDs := []primitive.ObjectID{}
	for _, post := range posts {
		if !hasID(authorIDs, post.UserId) {
			authorIDs = append(authorIDs, post.UserId)
		}
		for _, comment := range post.Comments {
			if !hasID(authorIDs, comment.UserId) {
				authorIDs = append(authorIDs, comment.UserId)
			}
		}
	}

	authors, err := s.users.GetManyByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := map[primitive.ObjectID]models.UserDto{}
	for i := range authors {
		authorByID[authors[i].Id] = authors[i].ToDto()
	}

	dtos := []models.PostDto{}
	for i := range posts {
		dtos = append(dtos, s.toDto(&posts[i], authorByID))
	}
	return dtos, nil
}

func (s *PostService) toDto(post *models.Post, authorByID map[primitive.ObjectID]models.UserDto) models.PostDto {
	author, ok := authorByID[post.UserId]
	if !ok {
		author = models.UserDto{Id: post.UserId}
	}

	dto := models.PostDto{
		Id:        post.Id,
		User:      author,
		Text:      post.Text,
		Img:       post.Img,
		Likes:     post.Likes,
		Comments:  []models.CommentDto{},
		CreatedAt: post.CreatedAt,
	}
	if dto.Likes == nil {
		dto.Likes = []primitive.ObjectID{}
	}

	for _, comment := range post.Comments {
		commentAuthor, ok := authorByID[comment.UserId]
		if !ok {
			commentAuthor = models.UserDto{Id: comment.UserId}
		}
		dto.Comments = append(dto.Comments, models.CommentDto{
			Id:        comment.Id,
			User:      commentAuthor,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return dto
}

package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"chirper/src/apperrors"
	"chirper/src/models"
	"chirper/src/store"
)

// FollowState reports which way a follow toggle resolved.
type FollowState string

const (
	StateFollowed   FollowState = "followed"
	StateUnfollowed FollowState = "unfollowed"
)

// Size of the candidate pool suggestions are drawn from before filtering.
const suggestPoolSize = 10

// SuggestCount is the default number of suggested users returned.
const SuggestCount = 4

// UpdateProfileParams carries the optional profile fields. A nil pointer (or
// nil image slice) means "leave unchanged"; an empty string explicitly clears
// a field.
type UpdateProfileParams struct {
	FullName *string
	Email    *string
	Username *string
	Bio      *string
	Link     *string

	CurrentPassword *string
	NewPassword     *string

	ProfileImg            []byte
	ProfileImgContentType string
	CoverImg              []byte
	CoverImgContentType   string
}

// UserService owns user records and the mirrored follow graph.
type UserService struct {
	users    store.UserStore
	notifier *NotificationService
	media    ObjectStore
	log      *logrus.Logger
}

func NewUserService(users store.UserStore, notifier *NotificationService, media ObjectStore, log *logrus.Logger) *UserService {
	return &UserService{users: users, notifier: notifier, media: media, log: log}
}

// GetProfile returns the user behind a username, hash stripped.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// FollowToggle follows the target if the actor does not follow it yet,
// unfollows otherwise. Both mirror sides (actor.following, target.followers)
// change together through set operations. A follow notification is recorded on
// the follow transition only.
func (s *UserService) FollowToggle(ctx context.Context, actorID, targetID primitive.ObjectID) (FollowState, error) {
	if actorID == targetID {
		return "", apperrors.Validationf("You can't follow/unfollow yourself")
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return "", err
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return "", err
	}

	if hasID(actor.Following, targetID) {
		if err := s.users.RemoveFollow(ctx, actorID, targetID); err != nil {
			return "", err
		}
		return StateUnfollowed, nil
	}

	if err := s.users.AddFollow(ctx, actorID, targetID); err != nil {
		return "", err
	}
	s.notifier.Record(ctx, actorID, targetID, models.NotificationTypeFollow)
	return StateFollowed, nil
}

// SuggestUsers samples a pool of other users, drops the ones the actor already
// follows, and returns up to count of them with hashes stripped. Composition
// only; no ordering guarantee.
func (s *UserService) SuggestUsers(ctx context.Context, actorID primitive.ObjectID, count int) ([]models.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	pool, err := s.users.Sample(ctx, actorID, suggestPoolSize)
	if err != nil {
		return nil, err
	}

	suggested := []models.User{}
	for _, candidate := range pool {
		if hasID(actor.Following, candidate.Id) {
			continue
		}
		candidate.Password = ""
		suggested = append(suggested, candidate)
		if len(suggested) == count {
			break
		}
	}
	return suggested, nil
}

// UpdateProfile applies the supplied fields in one atomic update. Absent
// fields stay untouched. A password change needs both the current and the new
// password. New images are uploaded before the metadata commit; the replaced
// objects are deleted best-effort afterwards.
func (s *UserService) UpdateProfile(ctx context.Context, actorID primitive.ObjectID, params UpdateProfileParams) (*models.User, error) {
	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	fields := store.Fields{}

	if (params.CurrentPassword == nil) != (params.NewPassword == nil) {
		return nil, apperrors.Validationf("Please provide both current password and new password")
	}
	if params.CurrentPassword != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*params.CurrentPassword)); err != nil {
			return nil, apperrors.Unauthorizedf("Current password is incorrect")
		}
		if len(*params.NewPassword) < minPasswordLength {
			return nil, apperrors.Validationf("Password must be at least 6 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hashed)
	}

	if params.Email != nil && *params.Email != user.Email {
		if !emailPattern.MatchString(*params.Email) {
			return nil, apperrors.Validationf("Invalid email format")
		}
		if other, err := s.users.GetByEmail(ctx, *params.Email); err == nil && other.Id != user.Id {
			return nil, apperrors.Conflictf("Email already exists")
		}
		fields["email"] = *params.Email
	}
	if params.Username != nil && *params.Username != user.Username {
		if other, err := s.users.GetByUsername(ctx, *params.Username); err == nil && other.Id != user.Id {
			return nil, apperrors.Conflictf("Username already exists")
		}
		fields["username"] = *params.Username
	}
	if params.FullName != nil {
		fields["fullname"] = *params.FullName
	}
	if params.Bio != nil {
		fields["bio"] = *params.Bio
	}
	if params.Link != nil {
		fields["link"] = *params.Link
	}

	// Upload replacements first so a failed upload aborts before any
	// persistent write. Old objects are only removed after the commit.
	oldRefs := []string{}
	if params.ProfileImg != nil {
		url, err := s.media.Upload(ctx, params.ProfileImg, params.ProfileImgContentType)
		if err != nil {
			return nil, err
		}
		fields["profileImg"] = url
		if user.ProfileImg != "" {
			oldRefs = append(oldRefs, user.ProfileImg)
		}
	}
	if params.CoverImg != nil {
		url, err := s.media.Upload(ctx, params.CoverImg, params.CoverImgContentType)
		if err != nil {
			return nil, err
		}
		fields["coverImg"] = url
		if user.CoverImg != "" {
			oldRefs = append(oldRefs, user.CoverImg)
		}
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, actorID, fields); err != nil {
			return nil, err
		}
	}

	for _, ref := range oldRefs {
		if err := s.media.Delete(ctx, ref); err != nil {
			s.log.WithError(err).WithField("ref", ref).Warn("failed to delete replaced image")
		}
	}

	updated, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	updated.Password = ""
	return updated, nil
}

package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"chirper/src/lib"
	"chirper/src/models"
	"chirper/src/store"
)

// fakeObjectStore records uploads and deletes and can be told to fail either.
type fakeObjectStore struct {
	uploadErr error
	deleteErr error

	uploaded []string
	deleted  []string
	counter  int
}

func (f *fakeObjectStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.counter++
	ref := fmt.Sprintf("http://objects.local/media/obj-%d", f.counter)
	f.uploaded = append(f.uploaded, ref)
	return ref, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return f.deleteErr
}

type fixture struct {
	mem     *store.Memory
	objects *fakeObjectStore

	auth          *AuthService
	users         *UserService
	posts         *PostService
	notifications *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	mem := store.NewMemory()
	objects := &fakeObjectStore{}
	tokens := lib.NewTokenManager("test-secret", time.Hour)
	notifier := NewNotificationService(mem.Notifications(), mem.Users(), log)

	return &fixture{
		mem:           mem,
		objects:       objects,
		auth:          NewAuthService(mem.Users(), tokens),
		users:         NewUserService(mem.Users(), notifier, objects, log),
		posts:         NewPostService(mem.Posts(), mem.Users(), notifier, objects, log),
		notifications: notifier,
	}
}

// register creates a user through the real signup path with password "secret1".
func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()

	user, _, err := f.auth.Register(context.Background(), username, username+"@example.com", "secret1", username)
	require.NoError(t, err)
	return user
}

func (f *fixture) notificationsFor(t *testing.T, user *models.User) []models.Notification {
	t.Helper()

	notifications, err := f.mem.Notifications().ListTo(context.Background(), user.Id)
	require.NoError(t, err)
	return notifications
}

package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	putErr    error
	removeErr error

	putBucket string
	putObject string
	putBody   string
	putType   string
	removed   []string
}

func (f *fakeClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.putBucket = bucketName
	f.putObject = objectName
	f.putBody = string(body)
	f.putType = opts.ContentType
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func (f *fakeClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, objectName)
	return nil
}

func newTestStore(client Client) *Store {
	return &Store{
		client:  client,
		bucket:  "chirper-media",
		baseURL: "http://localhost:9000/chirper-media",
	}
}

func TestUploadReturnsPublicURL(t *testing.T) {
	t.Parallel()
	client := &fakeClient{}
	store := newTestStore(client)

	url, err := store.Upload(context.Background(), []byte("payload"), "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/chirper-media/"))
	assert.Equal(t, "chirper-media", client.putBucket)
	assert.Equal(t, "payload", client.putBody)
	assert.Equal(t, "image/png", client.putType)
	assert.Equal(t, url, store.baseURL+"/"+client.putObject)
}

func TestUploadKeysAreUnique(t *testing.T) {
	t.Parallel()
	client := &fakeClient{}
	store := newTestStore(client)

	first, err := store.Upload(context.Background(), []byte("one"), "image/png")
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), []byte("two"), "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUploadError(t *testing.T) {
	t.Parallel()
	client := &fakeClient{putErr: errors.New("bucket gone")}
	store := newTestStore(client)

	_, err := store.Upload(context.Background(), []byte("payload"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestDeleteUsesObjectKeyFromURL(t *testing.T) {
	t.Parallel()
	client := &fakeClient{}
	store := newTestStore(client)

	url, err := store.Upload(context.Background(), []byte("payload"), "image/png")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), url))
	require.Len(t, client.removed, 1)
	assert.Equal(t, client.putObject, client.removed[0])
}

func TestObjectNameFromRef(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", objectNameFromRef("http://host/bucket/abc"))
	assert.Equal(t, "abc", objectNameFromRef("abc"))
}

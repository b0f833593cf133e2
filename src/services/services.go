// Package services implements the interaction rules of the application:
// credentials and sessions, the mirrored follow graph, posts with their
// mirrored like sets, and the notifications derived from those transitions.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectStore is the binary-object collaborator used for post and profile
// images. Implemented by media.Store; tests use a fake.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}

func hasID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

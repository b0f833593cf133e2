package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id         primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username   string               `json:"username" bson:"username"`
	Email      string               `json:"email" bson:"email"`
	Password   string               `json:"-" bson:"password"`
	FullName   string               `json:"fullname" bson:"fullname"`
	Bio        string               `json:"bio" bson:"bio"`
	Link       string               `json:"link" bson:"link"`
	ProfileImg string               `json:"profileImg" bson:"profileImg"`
	CoverImg   string               `json:"coverImg" bson:"coverImg"`
	Following  []primitive.ObjectID `json:"following" bson:"following"`
	Followers  []primitive.ObjectID `json:"followers" bson:"followers"`
	LikedPosts []primitive.ObjectID `json:"likedPosts" bson:"likedPosts"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserDto is the reduced shape embedded wherever a user is referenced from
// another entity (post author, comment author, notification sender).
type UserDto struct {
	Id         primitive.ObjectID `json:"_id" bson:"_id"`
	Username   string             `json:"username" bson:"username"`
	FullName   string             `json:"fullname" bson:"fullname"`
	ProfileImg string             `json:"profileImg" bson:"profileImg"`
}

// ToDto reduces a full user record to its embeddable shape.
func (u *User) ToDto() UserDto {
	return UserDto{
		Id:         u.Id,
		Username:   u.Username,
		FullName:   u.FullName,
		ProfileImg: u.ProfileImg,
	}
}

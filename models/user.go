package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}

// Session is the time-boxed proof of authentication. The ID is an opaque
// server-generated string stored as the document _id; fixed 24-hour window,
// no sliding renewal.
type Session struct {
	ID        string        `bson:"_id" json:"sessionId"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Email     string        `bson:"email" json:"email"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time     `bson:"expiresAt" json:"expiresAt"`
}

type PasswordResetToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"userId"`
	Token     string        `bson:"token"`
	ExpiresAt time.Time     `bson:"expiresAt"`
	Used      bool          `bson:"used"`
}

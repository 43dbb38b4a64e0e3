package deck

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Deck struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"user_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

type Card struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DeckID    primitive.ObjectID `json:"deckId" bson:"deck_id"`
	UserID    string             `json:"userId" bson:"user_id"`
	Question  string             `json:"question" bson:"question"`
	Answer    string             `json:"answer" bson:"answer"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Summary is the deck listing projection, including the card count.
type Summary struct {
	Deck      `bson:",inline"`
	CardCount int64 `json:"cardCount"`
}

type SaveDeckRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SaveCardRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

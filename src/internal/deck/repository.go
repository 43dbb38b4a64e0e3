package deck

import (
	"context"
	"errors"
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	CreateDeck(ctx context.Context, deck *Deck) error
	ListDecks(ctx context.Context, userID string) ([]Summary, error)
	GetDeck(ctx context.Context, userID, deckID string) (*Deck, error)
	UpdateDeck(ctx context.Context, userID, deckID string, req *SaveDeckRequest) error
	DeleteDeck(ctx context.Context, userID, deckID string) error
	CreateCard(ctx context.Context, card *Card) error
	ListCards(ctx context.Context, userID, deckID string) ([]Card, error)
	UpdateCard(ctx context.Context, userID, cardID string, req *SaveCardRequest) error
	DeleteCard(ctx context.Context, userID, cardID string) error
}

type repository struct {
	decks *mongo.Collection
	cards *mongo.Collection
}

func NewRepository(mongoClient *clients.MongoDB, deckCollection, cardCollection string) Repository {
	return &repository{
		decks: mongoClient.Database.Collection(deckCollection),
		cards: mongoClient.Database.Collection(cardCollection),
	}
}

func (r *repository) CreateDeck(ctx context.Context, deck *Deck) error {
	deck.CreatedAt = time.Now()
	deck.UpdatedAt = deck.CreatedAt

	result, err := r.decks.InsertOne(ctx, deck)
	if err != nil {
		logrus.WithError(err).WithField("user_id", deck.UserID).Error("Failed to insert deck")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		deck.ID = oid
	}
	return nil
}

func (r *repository) ListDecks(ctx context.Context, userID string) ([]Summary, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"updated_at": -1})

	cursor, err := r.decks.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find decks")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var decks []Deck
	if err := cursor.All(ctx, &decks); err != nil {
		logrus.WithError(err).Error("Failed to decode decks")
		return nil, models.ErrDatabaseQuery
	}

	summaries := make([]Summary, 0, len(decks))
	for _, d := range decks {
		count, err := r.cards.CountDocuments(ctx, bson.M{"deck_id": d.ID, "user_id": userID})
		if err != nil {
			logrus.WithError(err).WithField("deck_id", d.ID.Hex()).Error("Failed to count cards")
			return nil, models.ErrDatabaseQuery
		}
		summaries = append(summaries, Summary{Deck: d, CardCount: count})
	}

	return summaries, nil
}

func (r *repository) GetDeck(ctx context.Context, userID, deckID string) (*Deck, error) {
	oid, err := primitive.ObjectIDFromHex(deckID)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	var deck Deck
	filter := bson.M{"_id": oid, "user_id": userID}

	err = r.decks.FindOne(ctx, filter).Decode(&deck)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("deck_id", deckID).Error("Failed to get deck")
		return nil, models.ErrDatabaseQuery
	}

	return &deck, nil
}

func (r *repository) UpdateDeck(ctx context.Context, userID, deckID string, req *SaveDeckRequest) error {
	oid, err := primitive.ObjectIDFromHex(deckID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":       req.Title,
			"description": req.Description,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.decks.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("deck_id", deckID).Error("Failed to update deck")
		return models.ErrDatabaseUpdate
	}
	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

// DeleteDeck removes the deck and every card in it.
func (r *repository) DeleteDeck(ctx context.Context, userID, deckID string) error {
	oid, err := primitive.ObjectIDFromHex(deckID)
	if err != nil {
		return models.ErrInvalidParams
	}

	result, err := r.decks.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("deck_id", deckID).Error("Failed to delete deck")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	if _, err := r.cards.DeleteMany(ctx, bson.M{"deck_id": oid, "user_id": userID}); err != nil {
		logrus.WithError(err).WithField("deck_id", deckID).Error("Failed to delete deck cards")
		return models.ErrDatabaseDelete
	}

	return nil
}

func (r *repository) CreateCard(ctx context.Context, card *Card) error {
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt

	result, err := r.cards.InsertOne(ctx, card)
	if err != nil {
		logrus.WithError(err).WithField("user_id", card.UserID).Error("Failed to insert card")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		card.ID = oid
	}
	return nil
}

func (r *repository) ListCards(ctx context.Context, userID, deckID string) ([]Card, error) {
	oid, err := primitive.ObjectIDFromHex(deckID)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	filter := bson.M{"deck_id": oid, "user_id": userID}
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	cursor, err := r.cards.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("deck_id", deckID).Error("Failed to find cards")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var cards []Card
	if err := cursor.All(ctx, &cards); err != nil {
		logrus.WithError(err).Error("Failed to decode cards")
		return nil, models.ErrDatabaseQuery
	}

	return cards, nil
}

func (r *repository) UpdateCard(ctx context.Context, userID, cardID string, req *SaveCardRequest) error {
	oid, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"question":   req.Question,
			"answer":     req.Answer,
			"updated_at": time.Now(),
		},
	}

	result, err := r.cards.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("card_id", cardID).Error("Failed to update card")
		return models.ErrDatabaseUpdate
	}
	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *repository) DeleteCard(ctx context.Context, userID, cardID string) error {
	oid, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return models.ErrInvalidParams
	}

	result, err := r.cards.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("card_id", cardID).Error("Failed to delete card")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

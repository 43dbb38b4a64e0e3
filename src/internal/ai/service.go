package ai

import (
	"context"
	"strconv"
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/deck"
	"studysphere-svc/src/internal/models"
	"studysphere-svc/src/internal/note"
	"studysphere-svc/src/internal/quiz"

	"github.com/sirupsen/logrus"
)

const defaultGenerationCount = 10

type GenerateFlashcardsRequest struct {
	NoteID    string `json:"noteId"`
	Content   string `json:"content"`
	DeckTitle string `json:"deckTitle" binding:"required"`
	Count     int    `json:"count"`
}

type GenerateQuizRequest struct {
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
	Title   string `json:"title" binding:"required"`
	Count   int    `json:"count"`
}

type Service interface {
	GenerateFlashcards(ctx context.Context, userID string, req *GenerateFlashcardsRequest) (*deck.Deck, []deck.Card, error)
	GenerateQuiz(ctx context.Context, userID string, req *GenerateQuizRequest) (*quiz.Quiz, error)
}

type aiService struct {
	client   *clients.StudyAIClient
	notes    note.Repository
	decks    deck.Repository
	quizzes  quiz.Repository
	activity *clients.ActivityPublisher
}

func NewAIService(client *clients.StudyAIClient, notes note.Repository, decks deck.Repository, quizzes quiz.Repository, activity *clients.ActivityPublisher) Service {
	return &aiService{
		client:   client,
		notes:    notes,
		decks:    decks,
		quizzes:  quizzes,
		activity: activity,
	}
}

// GenerateFlashcards turns a note (or raw content) into a new deck of cards.
func (s *aiService) GenerateFlashcards(ctx context.Context, userID string, req *GenerateFlashcardsRequest) (*deck.Deck, []deck.Card, error) {
	content, err := s.resolveContent(ctx, userID, req.NoteID, req.Content)
	if err != nil {
		return nil, nil, err
	}

	count := req.Count
	if count <= 0 {
		count = defaultGenerationCount
	}

	generated, err := s.client.GenerateFlashcards(ctx, content, count)
	if err != nil {
		return nil, nil, err
	}
	if len(generated) == 0 {
		return nil, nil, models.ErrGenerationFailed
	}

	newDeck := &deck.Deck{
		UserID: userID,
		Title:  req.DeckTitle,
	}
	if err := s.decks.CreateDeck(ctx, newDeck); err != nil {
		return nil, nil, err
	}

	cards := make([]deck.Card, 0, len(generated))
	for _, g := range generated {
		card := deck.Card{
			DeckID:   newDeck.ID,
			UserID:   userID,
			Question: g.Question,
			Answer:   g.Answer,
		}
		if err := s.decks.CreateCard(ctx, &card); err != nil {
			return nil, nil, err
		}
		cards = append(cards, card)
	}

	s.publishGeneration(userID, "flashcards", len(cards))

	return newDeck, cards, nil
}

// GenerateQuiz turns a note (or raw content) into a new quiz.
func (s *aiService) GenerateQuiz(ctx context.Context, userID string, req *GenerateQuizRequest) (*quiz.Quiz, error) {
	content, err := s.resolveContent(ctx, userID, req.NoteID, req.Content)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = defaultGenerationCount
	}

	generated, err := s.client.GenerateQuiz(ctx, content, count)
	if err != nil {
		return nil, err
	}
	if len(generated) == 0 {
		return nil, models.ErrGenerationFailed
	}

	questions := make([]quiz.Question, 0, len(generated))
	for _, g := range generated {
		if g.CorrectIndex < 0 || g.CorrectIndex >= len(g.Options) {
			logrus.WithField("question", g.Question).Warn("Dropping generated question with invalid correct index")
			continue
		}
		questions = append(questions, quiz.Question{
			Question:     g.Question,
			Options:      g.Options,
			CorrectIndex: g.CorrectIndex,
		})
	}
	if len(questions) == 0 {
		return nil, models.ErrGenerationFailed
	}

	newQuiz := &quiz.Quiz{
		UserID:    userID,
		Title:     req.Title,
		Questions: questions,
	}
	if err := s.quizzes.Create(ctx, newQuiz); err != nil {
		return nil, err
	}

	s.publishGeneration(userID, "quiz", len(questions))

	return newQuiz, nil
}

// resolveContent prefers the referenced note over inline content; the note
// lookup is scoped to the calling user.
func (s *aiService) resolveContent(ctx context.Context, userID, noteID, content string) (string, error) {
	if noteID != "" {
		n, err := s.notes.GetByID(ctx, userID, noteID)
		if err != nil {
			return "", err
		}
		return n.Content, nil
	}
	if content == "" {
		return "", models.ErrInvalidParams
	}
	return content, nil
}

func (s *aiService) publishGeneration(userID, kind string, count int) {
	err := s.activity.PublishWithMetadata(userID, models.ServiceAIHandler, models.ActionAIGeneration, map[string]string{
		"kind":  kind,
		"count": strconv.Itoa(count),
	})
	if err != nil {
		logrus.WithError(err).Warn("Failed to publish generation activity")
	}
}

package quiz

import (
	"studysphere-svc/src/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Quiz struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"user_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question         `json:"questions" bson:"questions"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

type Question struct {
	Question     string   `json:"question" bson:"question"`
	Options      []string `json:"options" bson:"options"`
	CorrectIndex int      `json:"correctIndex" bson:"correct_index"`
}

type Attempt struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	QuizID    primitive.ObjectID `json:"quizId" bson:"quiz_id"`
	UserID    string             `json:"userId" bson:"user_id"`
	Answers   []int              `json:"answers" bson:"answers"`
	Score     int                `json:"score" bson:"score"`
	Total     int                `json:"total" bson:"total"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

type SaveQuizRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions" binding:"required,min=1,dive"`
}

type SubmitAttemptRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// Validate checks that every question has options and a correct index that
// points inside them.
func (r *SaveQuizRequest) Validate() error {
	for _, q := range r.Questions {
		if q.Question == "" || len(q.Options) < 2 {
			return models.ErrInvalidParams
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return models.ErrInvalidParams
		}
	}
	return nil
}

// Score grades a submitted answer sheet against the quiz. The answer count
// must match the question count; answers are compared by option index.
func (q *Quiz) Score(answers []int) (int, error) {
	if len(answers) != len(q.Questions) {
		return 0, models.ErrInvalidParams
	}

	score := 0
	for i, answer := range answers {
		if answer == q.Questions[i].CorrectIndex {
			score++
		}
	}
	return score, nil
}

package quiz

import (
	"studysphere-svc/src/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() *Quiz {
	return &Quiz{
		Title: "Cell biology",
		Questions: []Question{
			{Question: "Powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, CorrectIndex: 1},
			{Question: "Site of protein synthesis?", Options: []string{"Ribosome", "Lysosome", "Vacuole", "Nucleus"}, CorrectIndex: 0},
			{Question: "Contains genetic material?", Options: []string{"Cytoplasm", "Membrane", "Nucleus", "Mitochondria"}, CorrectIndex: 2},
		},
	}
}

func TestScoreAllCorrect(t *testing.T) {
	score, err := sampleQuiz().Score([]int{1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, score)
}

func TestScorePartiallyCorrect(t *testing.T) {
	score, err := sampleQuiz().Score([]int{1, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, score)
}

func TestScoreRejectsAnswerCountMismatch(t *testing.T) {
	_, err := sampleQuiz().Score([]int{1, 0})
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestSaveQuizRequestValidate(t *testing.T) {
	valid := &SaveQuizRequest{
		Title: "Valid",
		Questions: []Question{
			{Question: "Q?", Options: []string{"a", "b"}, CorrectIndex: 1},
		},
	}
	assert.NoError(t, valid.Validate())

	outOfRange := &SaveQuizRequest{
		Title: "Bad index",
		Questions: []Question{
			{Question: "Q?", Options: []string{"a", "b"}, CorrectIndex: 2},
		},
	}
	assert.ErrorIs(t, outOfRange.Validate(), models.ErrInvalidParams)

	tooFewOptions := &SaveQuizRequest{
		Title: "One option",
		Questions: []Question{
			{Question: "Q?", Options: []string{"a"}, CorrectIndex: 0},
		},
	}
	assert.ErrorIs(t, tooFewOptions.Validate(), models.ErrInvalidParams)
}

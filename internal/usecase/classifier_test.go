package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coach-chat/internal/domain"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Category
	}{
		{name: "form", text: "Keep good form on every rep.", want: domain.CategoryForm},
		{name: "technique", text: "Your TECHNIQUE needs work.", want: domain.CategoryForm},
		{name: "posture", text: "Watch your posture and core", want: domain.CategoryForm},
		{name: "workout", text: "Try this workout today.", want: domain.CategoryWorkout},
		{name: "exercise", text: "Pick one Exercise per muscle.", want: domain.CategoryWorkout},
		{name: "training", text: "Rest days are part of training.", want: domain.CategoryWorkout},
		{name: "nutrition", text: "Nutrition matters.", want: domain.CategoryNutrition},
		{name: "diet", text: "A balanced diet helps.", want: domain.CategoryNutrition},
		{name: "protein", text: "Aim for enough protein.", want: domain.CategoryNutrition},
		{name: "calories", text: "Track your calories.", want: domain.CategoryNutrition},
		{name: "motivation prefix", text: "Stay motivated!", want: domain.CategoryMotivation},
		{name: "confidence", text: "Build confidence slowly.", want: domain.CategoryMotivation},
		{name: "mindset", text: "It's all about mindset.", want: domain.CategoryMotivation},
		{name: "none", text: "Hello there, how are you?", want: domain.CategoryGeneral},
		{name: "empty", text: "", want: domain.CategoryGeneral},
		{name: "form beats nutrition", text: "Use proper technique and eat protein.", want: domain.CategoryForm},
		{name: "workout beats nutrition", text: "After training, get protein.", want: domain.CategoryWorkout},
		{name: "nutrition beats motivation", text: "Diet takes mindset.", want: domain.CategoryNutrition},
		{name: "substring match", text: "Great performance!", want: domain.CategoryForm},
	}
	c := KeywordClassifier{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, c.Classify(tc.text))
		})
	}
}

package usecase

import (
	"strings"

	"coach-chat/internal/domain"
)

// Classifier assigns a single category to a completion.
type Classifier interface {
	Classify(text string) domain.Category
}

type keywordGroup struct {
	category domain.Category
	keywords []string
}

// categoryPriority is evaluated top to bottom; the first group with a match wins.
var categoryPriority = []keywordGroup{
	{category: domain.CategoryForm, keywords: []string{"form", "technique", "posture"}},
	{category: domain.CategoryWorkout, keywords: []string{"workout", "exercise", "training"}},
	{category: domain.CategoryNutrition, keywords: []string{"nutrition", "diet", "protein", "calories"}},
	{category: domain.CategoryMotivation, keywords: []string{"motivat", "confidence", "mindset"}},
}

// KeywordClassifier matches lowercase substrings. "form" also matches words
// like "perform" and "information"; that is the established behavior.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(text string) domain.Category {
	lower := strings.ToLower(text)
	for _, g := range categoryPriority {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.category
			}
		}
	}
	return domain.CategoryGeneral
}

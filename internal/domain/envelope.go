package domain

// Category is the topical label attached to a coach response.
type Category string

const (
	CategoryWorkout    Category = "workout"
	CategoryNutrition  Category = "nutrition"
	CategoryMotivation Category = "motivation"
	CategoryForm       Category = "form"
	CategoryGeneral    Category = "general"
)

// TimestampLayout matches ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Envelope is the success payload returned for one chat request.
type Envelope struct {
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	Timestamp string   `json:"timestamp"`
}

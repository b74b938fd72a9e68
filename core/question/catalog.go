// Package question holds the static catalog of course problems.
// The catalog is compiled in and read-only; lookups never fail, unknown
// identifiers get a sentinel description.
package question

type Question struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// NotFoundDescription is returned by Describe for unknown question identifiers.
const NotFoundDescription = "Question not found."

var questions = []Question{
	{
		ID:          "Question 1",
		Description: "Calculating Virus Spread...",
		Images: []string{
			"question_images/q1_1.png",
			"question_images/q1_2.png",
		},
	},
	{
		ID:          "Question 2",
		Description: "Eating Gems...",
		Images: []string{
			"question_images/q2_1.png",
			"question_images/q2_2.png",
			"question_images/q2_3.png",
		},
	},
	{
		ID:          "Question 3",
		Description: "Restroom Stall Occupancy Problem...",
		Images: []string{
			"question_images/q3.png",
		},
	},
}

// All returns the catalog in display order.
func All() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Get returns the Question for the given identifier.
func Get(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Describe returns the description for the given question identifier,
// or NotFoundDescription for unknown ones.
func Describe(id string) string {
	if q, ok := Get(id); ok {
		return q.Description
	}
	return NotFoundDescription
}

// Images returns the ordered image asset paths for the given question identifier;
// nil for unknown ones.
func Images(id string) []string {
	if q, ok := Get(id); ok {
		return q.Images
	}
	return nil
}

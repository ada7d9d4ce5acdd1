// Package seed holds the static bootstrap catalog loaded by GET /init.
// Set IDs here are stable catalog keys; the loader re-keys every set to a
// freshly generated identifier and remaps card references through the
// old-to-new mapping.
package seed

type Set struct {
	ID          string
	Title       string
	Description string
	Private     bool
}

type Card struct {
	SetID    string
	Question string
	Answer   string
}

var Sets = []Set{
	{
		ID:          "capitals",
		Title:       "Capitals",
		Description: "Guess the capitals of countries from around the world",
		Private:     false,
	},
	{
		ID:          "programming",
		Title:       "Programming",
		Description: "Basic programming concepts and terminology",
		Private:     false,
	},
}

var CardsCapitals = []Card{
	{SetID: "capitals", Question: "What is the capital of France?", Answer: "Paris"},
	{SetID: "capitals", Question: "What is the capital of Germany?", Answer: "Berlin"},
	{SetID: "capitals", Question: "What is the capital of Japan?", Answer: "Tokyo"},
	{SetID: "capitals", Question: "What is the capital of Australia?", Answer: "Canberra"},
	{SetID: "capitals", Question: "What is the capital of Canada?", Answer: "Ottawa"},
	{SetID: "capitals", Question: "What is the capital of Brazil?", Answer: "Brasília"},
	{SetID: "capitals", Question: "What is the capital of Spain?", Answer: "Madrid"},
	{SetID: "capitals", Question: "What is the capital of Italy?", Answer: "Rome"},
	{SetID: "capitals", Question: "What is the capital of Kenya?", Answer: "Nairobi"},
	{SetID: "capitals", Question: "What is the capital of South Korea?", Answer: "Seoul"},
}

var CardsProgramming = []Card{
	{SetID: "programming", Question: "What does HTTP stand for?", Answer: "HyperText Transfer Protocol"},
	{SetID: "programming", Question: "What is a variable?", Answer: "A named storage location for a value"},
	{SetID: "programming", Question: "What does API stand for?", Answer: "Application Programming Interface"},
	{SetID: "programming", Question: "What is a loop?", Answer: "A construct that repeats a block of code"},
	{SetID: "programming", Question: "What does SQL stand for?", Answer: "Structured Query Language"},
	{SetID: "programming", Question: "What is recursion?", Answer: "A function calling itself"},
	{SetID: "programming", Question: "What does JSON stand for?", Answer: "JavaScript Object Notation"},
	{SetID: "programming", Question: "What is a boolean?", Answer: "A value that is either true or false"},
}

// Cards returns the whole card catalog in insertion order.
func Cards() []Card {
	all := make([]Card, 0, len(CardsCapitals)+len(CardsProgramming))
	all = append(all, CardsCapitals...)
	all = append(all, CardsProgramming...)
	return all
}

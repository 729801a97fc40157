package drill

var correctFeedback = []string{
	"Excellent!", "You got it!", "Fantastic work!", "Bravo!",
	"Perfect match!", "Superb!", "Nailed it!", "Brilliant!",
}

var incorrectFeedback = []string{
	"Oops, not quite! Keep trying!", "Almost there, give it another shot!",
	"Don't worry, you'll get it!", "That's not it, but you're learning!",
	"Try again, you can do it!", "A little off, keep practicing!",
	"Keep pushing, you'll find it!", "Not the one, but every try helps!",
}

// PickFeedback returns a random encouragement line for an answer.
func PickFeedback(correct bool, rng Rand) string {
	lines := incorrectFeedback
	if correct {
		lines = correctFeedback
	}
	return lines[rng.IntN(len(lines))]
}

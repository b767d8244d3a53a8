package quiz

// The lead-generation quiz: a fixed set of screening questions, each answered
// on a 0-3 scale (never / rarely / sometimes / often). The summed score maps
// to a recommendation tier. This is marketing guidance, not a clinical
// instrument; the copy below says so.

// Question is one quiz prompt. Answers index into Options.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

var scaleOptions = []string{"Never", "Rarely", "Sometimes", "Often"}

// Questions is the fixed quiz, in display order.
var Questions = []Question{
	{ID: "communication", Prompt: "Does your child have difficulty communicating wants and needs?", Options: scaleOptions},
	{ID: "social", Prompt: "Does your child struggle to engage with peers or family members?", Options: scaleOptions},
	{ID: "routines", Prompt: "Does your child become upset by changes in routine?", Options: scaleOptions},
	{ID: "repetitive", Prompt: "Does your child repeat movements, sounds, or phrases?", Options: scaleOptions},
	{ID: "daily-skills", Prompt: "Does your child need help with daily living skills beyond what is typical for their age?", Options: scaleOptions},
	{ID: "behavior", Prompt: "Do challenging behaviors interfere with family activities?", Options: scaleOptions},
}

// Tier buckets a quiz score.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// Result is the scored quiz outcome.
type Result struct {
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore"`
	Tier           Tier   `json:"tier"`
	Recommendation string `json:"recommendation"`
}

var recommendations = map[Tier]string{
	TierLow: "Your answers suggest few areas of concern right now. " +
		"Keep observing, and revisit this checklist if anything changes.",
	TierModerate: "Your answers suggest some areas where structured support could help. " +
		"Consider discussing an evaluation with your pediatrician.",
	TierHigh: "Your answers suggest your child may benefit from ABA therapy. " +
		"We recommend contacting a provider for a formal evaluation. " +
		"This quiz is not a diagnosis.",
}

// maxAnswer is the top of the per-question scale.
const maxAnswer = 3

// Score sums the answers and buckets them into a tier. Answers beyond the
// question count are ignored; missing or out-of-range answers count as zero.
// Bad input degrades the score, it never errors.
func Score(answers []int) Result {
	maxScore := len(Questions) * maxAnswer

	score := 0
	for i, a := range answers {
		if i >= len(Questions) {
			break
		}
		if a < 0 {
			continue
		}
		if a > maxAnswer {
			a = maxAnswer
		}
		score += a
	}

	tier := TierLow
	switch {
	case score >= maxScore*2/3:
		tier = TierHigh
	case score >= maxScore/3:
		tier = TierModerate
	}

	return Result{
		Score:          score,
		MaxScore:       maxScore,
		Tier:           tier,
		Recommendation: recommendations[tier],
	}
}

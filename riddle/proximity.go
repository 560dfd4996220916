package riddle

const (
	MinProximity = -5
	MaxProximity = 5
)

var proximityPhrases = [...]string{
	"🥶🥶🥶🥶🥶 Absolute zero",
	"🧊🧊🧊🧊 Super Ice Cold",
	"❄️❄️❄️ Ice Cold",
	"🍦🍦 Colder",
	"❄️  A little chilly",
	"🤔 You're basically right where you started",
	"☀️  Warmer",
	"🔥🔥 Getting warmer!!",
	"🌶️🌶️🌶️  Hot on the Trail!!!",
	"🔥🔥🔥🔥 Burning up!!!!",
	"🥵🥵🥵🥵🥵 Red Hot!!!!!",
}

// ClampProximity forces p into [MinProximity, MaxProximity].
func ClampProximity(p int) int {
	return max(MinProximity, min(MaxProximity, p))
}

// Phrase maps a proximity score to its temperature phrase. Out of range
// scores are clamped.
func Phrase(p int) string {
	return proximityPhrases[ClampProximity(p)-MinProximity]
}

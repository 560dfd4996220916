package riddle

import "strings"

var animalEmojis = map[string]string{
	"ant":       "🐜",
	"bat":       "🦇",
	"bear":      "🐻",
	"bee":       "🐝",
	"buffalo":   "🦬",
	"butterfly": "🦋",
	"camel":     "🐫",
	"cat":       "🐱",
	"chicken":   "🐔",
	"cow":       "🐄",
	"crab":      "🦀",
	"deer":      "🦌",
	"dog":       "🐶",
	"dolphin":   "🐬",
	"dragon":    "🐲",
	"elephant":  "🐘",
	"fish":      "🐟",
	"flamingo":  "🦩",
	"fox":       "🦊",
	"frog":      "🐸",
	"giraffe":   "🦒",
	"horse":     "🐴",
	"kangaroo":  "🦘",
	"koala":     "🐨",
	"ladybug":   "🐞",
	"lion":      "🦁",
	"lobster":   "🦞",
	"monkey":    "🐒",
	"mouse":     "🐭",
	"narwhal":   "🦄🐋",
	"octopus":   "🐙",
	"orca":      "🐋",
	"otter":     "🦦",
	"owl":       "🦉",
	"panda":     "🐼",
	"parrot":    "🦜",
	"peacock":   "🦚",
	"penguin":   "🐧",
	"pig":       "🐖",
	"rabbit":    "🐰",
	"scorpion":  "🦂",
	"shark":     "🦈",
	"sheep":     "🐑",
	"skunk":     "🦨",
	"sloth":     "🦥",
	"snail":     "🐌",
	"snake":     "🐍",
	"spider":    "🕷️",
	"squid":     "🦑",
	"tiger":     "🐅",
	"turtle":    "🐢",
	"whale":     "🐳",
	"zebra":     "🦓",
}

// Emoji returns the emoji for an animal name, if one is known.
func Emoji(word string) (string, bool) {
	e, ok := animalEmojis[strings.ToLower(word)]
	return e, ok
}

// Emojify replaces every whitespace-separated word naming a known animal
// with its emoji. Runs of whitespace collapse to a single space.
func Emojify(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if e, ok := Emoji(w); ok {
			words[i] = e
		}
	}
	return strings.Join(words, " ")
}

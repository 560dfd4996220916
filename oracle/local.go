/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package oracle provides implementations of riddle.Oracle.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Seednode/riddlebox/riddle"
)

// Local answers from a fixed table of animal traits. Naming an animal
// earns a proximity based on how many traits it shares with the target;
// asking about a trait ("is it a mammal?") earns a yes or no.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func lastGuess(history []riddle.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].FromRiddler() {
			return history[i].Text, true
		}
	}
	return "", false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func singular(word string) string {
	if _, ok := animalTraits[word]; ok {
		return word
	}
	for _, suffix := range []string{"es", "s"} {
		if trimmed := strings.TrimSuffix(word, suffix); trimmed != word {
			if _, ok := animalTraits[trimmed]; ok {
				return trimmed
			}
		}
	}
	if word == "mice" {
		return "mouse"
	}
	return word
}

func article(word string) string {
	if strings.ContainsRune("aeiou", rune(word[0])) {
		return "an " + word
	}
	return "a " + word
}

func describe(trait int, value string) string {
	switch traitNames[trait] {
	case "class", "diet":
		return article(value)
	case "habitat":
		return "from the " + value
	}
	return value
}

func (l *Local) Ask(ctx context.Context, history []riddle.Message, target string) (riddle.Answer, error) {
	if err := ctx.Err(); err != nil {
		return riddle.Answer{}, err
	}

	want, ok := animalTraits[target]
	if !ok {
		return riddle.Answer{}, fmt.Errorf("no traits known for %q", target)
	}

	guess, ok := lastGuess(history)
	if !ok {
		return riddle.Answer{}, fmt.Errorf("history contains no guess")
	}

	words := tokenize(guess)

	for _, w := range words {
		name := singular(w)
		if name == target {
			return riddle.Answer{
				Content:   fmt.Sprintf("Yes! I was thinking of %s! You got it!", article(target)),
				Proximity: proximity(riddle.MaxProximity),
				Correct:   true,
			}, nil
		}

		got, ok := animalTraits[name]
		if !ok {
			continue
		}

		return compareAnimals(name, got, want), nil
	}

	for _, w := range words {
		i, ok := traitIndex[w]
		if !ok {
			continue
		}

		if want.list()[i] == w {
			return riddle.Answer{
				Content:   fmt.Sprintf("Yes, it's %s.", describe(i, w)),
				Proximity: proximity(1),
			}, nil
		}

		return riddle.Answer{
			Content:   fmt.Sprintf("No, it isn't %s.", describe(i, w)),
			Proximity: proximity(-1),
		}, nil
	}

	return riddle.Answer{
		Content: "Hmm, I can't answer that. Try naming an animal, or ask me how big it is.",
	}, nil
}

func compareAnimals(name string, got, want traits) riddle.Answer {
	shared := 0
	hint := ""
	g, w := got.list(), want.list()

	for i := range g {
		if g[i] != w[i] {
			continue
		}
		shared++
		if hint == "" {
			hint = describe(i, w[i])
		}
	}

	content := fmt.Sprintf("It's not %s, and they have nothing in common.", article(name))
	if shared > 0 {
		content = fmt.Sprintf("It's not %s, but like one it's %s.", article(name), hint)
	}

	return riddle.Answer{
		Content:   content,
		Proximity: proximity(shared*2 - 4),
	}
}

func proximity(p int) *int {
	return &p
}

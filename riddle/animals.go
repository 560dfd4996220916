package riddle

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// AnimalSource supplies hidden targets.
type AnimalSource interface {
	RandomAnimal() string
}

// Animals returns every name the riddler may pick, sorted.
func Animals() []string {
	names := make([]string, 0, len(animalEmojis))
	for name := range animalEmojis {
		// Mythical.
		if name == "dragon" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ListSource picks uniformly from a fixed list. It is safe for concurrent use.
type ListSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	names []string
}

func NewListSource(src rand.Source, names []string) *ListSource {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if len(names) == 0 {
		names = Animals()
	}

	return &ListSource{
		rng:   rand.New(src),
		names: slices.Clone(names),
	}
}

func (s *ListSource) RandomAnimal() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.names[s.rng.IntN(len(s.names))]
}

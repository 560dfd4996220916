package oracle

type traits struct {
	class   string
	habitat string
	size    string
	diet    string
}

func (t traits) list() [4]string {
	return [4]string{t.class, t.habitat, t.size, t.diet}
}

var traitNames = [4]string{"class", "habitat", "size", "diet"}

var animalTraits = map[string]traits{
	"ant":       {"insect", "land", "tiny", "omnivore"},
	"bat":       {"mammal", "forest", "small", "omnivore"},
	"bear":      {"mammal", "forest", "huge", "omnivore"},
	"bee":       {"insect", "land", "tiny", "herbivore"},
	"buffalo":   {"mammal", "grassland", "huge", "herbivore"},
	"butterfly": {"insect", "land", "tiny", "herbivore"},
	"camel":     {"mammal", "desert", "huge", "herbivore"},
	"cat":       {"mammal", "farm", "small", "carnivore"},
	"chicken":   {"bird", "farm", "small", "omnivore"},
	"cow":       {"mammal", "farm", "huge", "herbivore"},
	"crab":      {"crustacean", "ocean", "small", "omnivore"},
	"deer":      {"mammal", "forest", "large", "herbivore"},
	"dog":       {"mammal", "farm", "medium", "omnivore"},
	"dolphin":   {"mammal", "ocean", "large", "carnivore"},
	"elephant":  {"mammal", "grassland", "huge", "herbivore"},
	"fish":      {"fish", "river", "small", "omnivore"},
	"flamingo":  {"bird", "river", "medium", "omnivore"},
	"fox":       {"mammal", "forest", "medium", "omnivore"},
	"frog":      {"amphibian", "river", "tiny", "carnivore"},
	"giraffe":   {"mammal", "grassland", "huge", "herbivore"},
	"horse":     {"mammal", "farm", "huge", "herbivore"},
	"kangaroo":  {"mammal", "grassland", "large", "herbivore"},
	"koala":     {"mammal", "forest", "small", "herbivore"},
	"ladybug":   {"insect", "land", "tiny", "carnivore"},
	"lion":      {"mammal", "grassland", "large", "carnivore"},
	"lobster":   {"crustacean", "ocean", "small", "carnivore"},
	"monkey":    {"mammal", "forest", "medium", "omnivore"},
	"mouse":     {"mammal", "farm", "tiny", "omnivore"},
	"narwhal":   {"mammal", "arctic", "huge", "carnivore"},
	"octopus":   {"mollusc", "ocean", "medium", "carnivore"},
	"orca":      {"mammal", "ocean", "huge", "carnivore"},
	"otter":     {"mammal", "river", "small", "carnivore"},
	"owl":       {"bird", "forest", "small", "carnivore"},
	"panda":     {"mammal", "forest", "large", "herbivore"},
	"parrot":    {"bird", "forest", "small", "herbivore"},
	"peacock":   {"bird", "forest", "medium", "omnivore"},
	"penguin":   {"bird", "arctic", "medium", "carnivore"},
	"pig":       {"mammal", "farm", "large", "omnivore"},
	"rabbit":    {"mammal", "grassland", "small", "herbivore"},
	"scorpion":  {"arachnid", "desert", "tiny", "carnivore"},
	"shark":     {"fish", "ocean", "huge", "carnivore"},
	"sheep":     {"mammal", "farm", "medium", "herbivore"},
	"skunk":     {"mammal", "forest", "small", "omnivore"},
	"sloth":     {"mammal", "forest", "medium", "herbivore"},
	"snail":     {"mollusc", "land", "tiny", "herbivore"},
	"snake":     {"reptile", "grassland", "medium", "carnivore"},
	"spider":    {"arachnid", "land", "tiny", "carnivore"},
	"squid":     {"mollusc", "ocean", "medium", "carnivore"},
	"tiger":     {"mammal", "forest", "large", "carnivore"},
	"turtle":    {"reptile", "ocean", "medium", "omnivore"},
	"whale":     {"mammal", "ocean", "huge", "carnivore"},
	"zebra":     {"mammal", "grassland", "large", "herbivore"},
}

// traitIndex maps every trait value to the trait it belongs to.
var traitIndex = func() map[string]int {
	idx := make(map[string]int)
	for _, t := range animalTraits {
		for i, v := range t.list() {
			idx[v] = i
		}
	}
	return idx
}()

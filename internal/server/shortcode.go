package server

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Join codes are memorable adjective-noun-number triples like
// "brave-tiger-42". The registry retries on collision.

var codeAdjectives = []string{
	"happy", "clever", "brave", "bright", "swift",
	"calm", "bold", "wise", "quick", "proud",
	"sharp", "cool", "warm", "free", "kind",
	"fair", "sure", "true", "wild", "pure",
	"keen", "able", "aware", "agile", "alert",
	"smart", "witty", "jolly", "merry", "noble",
	"royal", "grand", "prime", "vital", "zesty",
	"peppy", "perky", "chipper", "bouncy", "lively",
}

var codeNouns = []string{
	"tiger", "eagle", "dragon", "phoenix", "falcon",
	"wolf", "bear", "lion", "hawk", "panther",
	"fox", "owl", "raven", "cobra", "lynx",
	"puma", "jaguar", "cheetah", "leopard", "otter",
	"beaver", "badger", "wombat", "koala", "panda",
	"dolphin", "whale", "shark", "octopus", "mantis",
	"spider", "beetle", "hornet", "wasp", "cricket",
	"turtle", "tortoise", "gecko", "iguana", "newt",
}

// newShortCode returns a random join code.
func newShortCode() string {
	adjective := codeAdjectives[rand.Intn(len(codeAdjectives))]
	noun := codeNouns[rand.Intn(len(codeNouns))]
	return fmt.Sprintf("%s-%s-%d", adjective, noun, 10+rand.Intn(90))
}

// fallbackShortCode is used if the word space is exhausted.
func fallbackShortCode() string {
	return "game-" + uuid.New().String()[:8]
}

// validShortCode reports whether code has the adjective-noun-number shape.
func validShortCode(code string) bool {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return false
	}
	if !contains(codeAdjectives, parts[0]) || !contains(codeNouns, parts[1]) {
		return false
	}
	n, err := strconv.Atoi(parts[2])
	return err == nil && n >= 10 && n <= 99
}

// normalizeShortCode folds case, spaces and underscores so codes survive
// being typed from memory.
func normalizeShortCode(code string) string {
	s := strings.ToLower(strings.TrimSpace(code))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

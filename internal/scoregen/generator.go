package scoregen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Pools the generator draws from. Song and difficulty pools are small on
// purpose so runs exercise the duplicate policy, not just fresh buckets.
var (
	songPool = []string{
		"Songs/StepMix 1/Impossible Fidelity",
		"Songs/StepMix 1/Energizer",
		"Songs/In The Groove/Bend Your Mind",
		"Songs/In The Groove/Anubis",
		"Songs/Community Pack/Starlight Vega",
		"Songs/Community Pack/Phantom Rush",
	}
	difficultyPool = []string{"Beginner", "Easy", "Medium", "Hard", "Challenge"}
	stepsTypePool  = []string{"dance-single", "dance-double"}
	gradePool      = []string{"Tier01", "Tier02", "Tier03", "Tier04", "Tier05"}
)

// Score generation bounds.
const (
	minScore   = 10_000
	scoreRange = 990_000
	minCombo   = 10
	comboRange = 490
)

// generator produces randomized but well-formed submissions.
type generator struct {
	rng     *rand.Rand
	apiKey  string
	players []player
}

type player struct {
	guid string
	name string
}

func newGenerator(cfg *Config, seed int64) *generator {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data, not security-sensitive
	players := make([]player, cfg.Players)
	for i := range players {
		players[i] = player{
			guid: uuid.NewString(),
			name: fmt.Sprintf("Player-%02d", i+1),
		}
	}
	return &generator{rng: rng, apiKey: cfg.APIKey, players: players}
}

func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.Intn(len(pool))]
}

// next returns one randomized submission. percent_dp is biased toward the
// upper tiers so ranking-info responses show varied tier labels.
func (g *generator) next() Submission {
	p := pick(g.rng, g.players)
	percentDP := 0.55 + g.rng.Float64()*0.45
	return Submission{
		APIKey:     g.apiKey,
		SongDir:    pick(g.rng, songPool),
		Difficulty: pick(g.rng, difficultyPool),
		StepsType:  pick(g.rng, stepsTypePool),
		Grade:      pick(g.rng, gradePool),
		Score:      minScore + g.rng.Int63n(scoreRange),
		PercentDP:  percentDP,
		MaxCombo:   minCombo + g.rng.Int63n(comboRange),
		DateTime:   time.Now().UTC().Format("2006-01-02 15:04:05"),
		PlayerGUID: p.guid,
		PlayerName: p.name,
	}
}

package docsource

import (
	"hash/fnv"
	"math"
	"sort"

	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// nodeID maps an entity name to a graph node index by hashing it with
// fnv64a: two distinct names map to distinct nodes in practice, and the
// mapping needs no shared registry across articles since it is a pure
// function of the name.
func nodeID(entity string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(entity))
	return h.Sum64()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// TranslateConfig controls the article -> Graph translation rule.
type TranslateConfig struct {
	// MaxDistance bounds |sen1-sen2| for a mention pair to qualify.
	MaxDistance int
	// SumWeights, when true, sums every qualifying pair's contribution
	// onto an edge; when false, only the smallest-distance pair
	// contributes, ties broken by the first-encountered pair in
	// ascending (sen1, sen2) order.
	SumWeights bool
	Flags      sparse.Flags
	Eps        float32
}

type candidate struct {
	dist int
	sen1 int
}

// Translate builds a Graph from one article's entity mentions: for each
// pair of mentions (e1@sen1),(e2@sen2) with e1≠e2 and
// |sen1-sen2| <= MaxDistance, add an edge with weight exp(-|sen1-sen2|).
// Self-pairs (same entity name) are ignored regardless of sentence.
func Translate(mentions []Entity, cfg TranslateConfig) *sparse.Graph {
	g := sparse.NewGraph(cfg.Flags, cfg.Eps)
	if cfg.SumWeights {
		for i, e1 := range mentions {
			for j := i + 1; j < len(mentions); j++ {
				e2 := mentions[j]
				if e1.Ent == e2.Ent {
					continue
				}
				dist := absInt(e1.Sen - e2.Sen)
				if dist > cfg.MaxDistance {
					continue
				}
				w := float32(math.Exp(-float64(dist)))
				g.Add(nodeID(e1.Ent), nodeID(e2.Ent), w)
			}
		}
		return g
	}

	// sum_weights=false: only the smallest-distance pair per entity-pair
	// contributes, ties broken by first encounter in ascending
	// (sen1, sen2) mention order.
	sorted := append([]Entity(nil), mentions...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Sen < sorted[j].Sen })

	best := make(map[[2]string]candidate)
	weight := make(map[[2]string]float32)
	for i, e1 := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			e2 := sorted[j]
			if e1.Ent == e2.Ent {
				continue
			}
			dist := absInt(e1.Sen - e2.Sen)
			if dist > cfg.MaxDistance {
				continue
			}
			key := pairKey(e1.Ent, e2.Ent)
			c := candidate{dist: dist, sen1: e1.Sen}
			if cur, ok := best[key]; !ok || c.dist < cur.dist {
				best[key] = c
				weight[key] = float32(math.Exp(-float64(dist)))
			}
		}
	}
	for key, w := range weight {
		g.Set(nodeID(key[0]), nodeID(key[1]), w)
	}
	return g
}

func pairKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

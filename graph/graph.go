// Package graph builds and queries the directed weighted influence
// network over an agent population. The graph is constructed exactly once
// from the initial population and is read-only afterwards, so lookups
// need no locking.
package graph

import (
	"math/rand"
	"sort"

	"github.com/dejavas-ai/arena/core"
)

// Topology selects the strategy used to generate influence edges.
type Topology string

const (
	EchoChamber  Topology = "echo_chamber"
	LooseNetwork Topology = "loose_network"
	RealFollower Topology = "real_follower"
)

// ParseTopology maps a wire name onto a Topology, defaulting to
// LooseNetwork for anything unrecognized.
func ParseTopology(s string) Topology {
	switch Topology(s) {
	case EchoChamber, LooseNetwork, RealFollower:
		return Topology(s)
	default:
		return LooseNetwork
	}
}

// Graph is a directed weighted network over agent names. An edge A→B with
// weight w means A influences B with strength w in (0,1].
type Graph struct {
	nodes map[string]bool
	out   map[string]map[string]float64
	in    map[string]map[string]float64
}

// New creates an empty influence graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		out:   make(map[string]map[string]float64),
		in:    make(map[string]map[string]float64),
	}
}

// AddNode registers an agent name.
func (g *Graph) AddNode(name string) {
	g.nodes[name] = true
}

// AddEdge inserts source→target with the given weight. Self-loops and
// non-positive weights are rejected, preserving the graph invariants.
func (g *Graph) AddEdge(source, target string, weight float64) {
	if source == target || weight <= 0 {
		return
	}
	g.AddNode(source)
	g.AddNode(target)
	if g.out[source] == nil {
		g.out[source] = make(map[string]float64)
	}
	if g.in[target] == nil {
		g.in[target] = make(map[string]float64)
	}
	g.out[source][target] = weight
	g.in[target][source] = weight
}

// InfluencersOf returns the predecessors of the agent, sorted by name so
// propagation order is reproducible across runs.
func (g *Graph) InfluencersOf(name string) []string {
	return sortedKeys(g.in[name])
}

// FollowersOf returns the successors of the agent, sorted by name.
func (g *Graph) FollowersOf(name string) []string {
	return sortedKeys(g.out[name])
}

// InfluenceWeight returns the edge weight from source to target, or 0 if
// no such edge exists.
func (g *Graph) InfluenceWeight(source, target string) float64 {
	return g.out[source][target]
}

// OutDegree returns the number of agents the named agent influences.
func (g *Graph) OutDegree(name string) int {
	return len(g.out[name])
}

// NodeCount returns the number of registered agents.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the total number of influence edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, targets := range g.out {
		total += len(targets)
	}
	return total
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build produces the influence network for a population under the given
// topology. It reads the agents' initial opinions and influence scores
// and must run before the first round.
func Build(topology Topology, agents []*core.Agent, rng *rand.Rand) *Graph {
	g := New()
	for _, a := range agents {
		g.AddNode(a.Name)
	}

	switch topology {
	case EchoChamber:
		buildEchoChamber(g, agents, rng)
	case RealFollower:
		buildRealFollower(g, agents, rng)
	default:
		buildLooseNetwork(g, agents, rng)
	}
	return g
}

// buildEchoChamber connects similar agents: each ordered pair gets an
// edge weighted by opinion similarity with probability similarity×0.3.
// All agents start at the neutral opinion, so at construction time the
// similarity is uniformly 1 and the network comes out near-complete.
// That is the intended homophily behavior, not an accident.
func buildEchoChamber(g *Graph, agents []*core.Agent, rng *rand.Rand) {
	for _, a := range agents {
		for _, b := range agents {
			if a.Name == b.Name {
				continue
			}
			similarity := 1 - abs(a.Opinion-b.Opinion)
			if rng.Float64() < similarity*0.3 {
				g.AddEdge(a.Name, b.Name, similarity)
			}
		}
	}
}

// buildLooseNetwork gives each agent 2-4 random outgoing connections with
// uniform weights in (0,1].
func buildLooseNetwork(g *Graph, agents []*core.Agent, rng *rand.Rand) {
	for _, a := range agents {
		degree := 2 + rng.Intn(3)
		if max := len(agents) - 1; degree > max {
			degree = max
		}
		for _, idx := range pickOthers(agents, a.Name, degree, rng) {
			weight := 1 - rng.Float64() // (0,1]
			g.AddEdge(a.Name, agents[idx].Name, weight)
		}
	}
}

// buildRealFollower splits the population power-law style: the top 20%
// by influence score (minimum one) are influencers, everyone else
// follows 1-3 of them. Edge weight is the followed influencer's score.
func buildRealFollower(g *Graph, agents []*core.Agent, rng *rand.Rand) {
	ranked := make([]*core.Agent, len(agents))
	copy(ranked, agents)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Genome.InfluenceScore != ranked[j].Genome.InfluenceScore {
			return ranked[i].Genome.InfluenceScore > ranked[j].Genome.InfluenceScore
		}
		return ranked[i].Name < ranked[j].Name
	})

	numInfluencers := len(ranked) / 5
	if numInfluencers < 1 {
		numInfluencers = 1
	}
	influencers := ranked[:numInfluencers]
	followers := ranked[numInfluencers:]

	for _, follower := range followers {
		follows := 1 + rng.Intn(min(3, len(influencers)))
		for _, idx := range rng.Perm(len(influencers))[:follows] {
			target := influencers[idx]
			g.AddEdge(follower.Name, target.Name, target.Genome.InfluenceScore)
		}
	}
}

// pickOthers selects n distinct agent indexes excluding the named agent.
func pickOthers(agents []*core.Agent, exclude string, n int, rng *rand.Rand) []int {
	candidates := make([]int, 0, len(agents)-1)
	for i, a := range agents {
		if a.Name != exclude {
			candidates = append(candidates, i)
		}
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	picked := make([]int, 0, n)
	for _, idx := range rng.Perm(len(candidates))[:n] {
		picked = append(picked, candidates[idx])
	}
	return picked
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

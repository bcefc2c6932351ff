package graph

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dejavas-ai/arena/core"
)

func makeAgents(n int) []*core.Agent {
	agents := make([]*core.Agent, 0, n)
	for i := 0; i < n; i++ {
		agents = append(agents, core.NewAgent(fmt.Sprintf("agent_%02d", i), core.Genome{
			Role:            core.RoleCustomer,
			InfluenceScore:  0.5,
			AttentionBudget: 100,
		}))
	}
	return agents
}

func TestParseTopology(t *testing.T) {
	tests := []struct {
		in   string
		want Topology
	}{
		{"echo_chamber", EchoChamber},
		{"loose_network", LooseNetwork},
		{"real_follower", RealFollower},
		{"", LooseNetwork},
		{"garbage", LooseNetwork},
	}
	for _, tt := range tests {
		if got := ParseTopology(tt.in); got != tt.want {
			t.Errorf("ParseTopology(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAddEdgeRejectsSelfLoopsAndBadWeights(t *testing.T) {
	g := New()

	g.AddEdge("a", "a", 0.5)
	if g.EdgeCount() != 0 {
		t.Error("self-loop should be rejected")
	}

	g.AddEdge("a", "b", 0)
	g.AddEdge("a", "b", -0.3)
	if g.EdgeCount() != 0 {
		t.Error("non-positive weights should be rejected")
	}

	g.AddEdge("a", "b", 0.7)
	if g.EdgeCount() != 1 {
		t.Error("valid edge should be accepted")
	}
	if w := g.InfluenceWeight("a", "b"); w != 0.7 {
		t.Errorf("weight = %f, want 0.7", w)
	}
	if w := g.InfluenceWeight("b", "a"); w != 0 {
		t.Errorf("reverse edge should not exist, got weight %f", w)
	}
}

func TestInfluencersSorted(t *testing.T) {
	g := New()
	g.AddEdge("zed", "target", 0.5)
	g.AddEdge("alice", "target", 0.4)
	g.AddEdge("mike", "target", 0.3)

	got := g.InfluencersOf("target")
	want := []string{"alice", "mike", "zed"}
	if len(got) != len(want) {
		t.Fatalf("expected %d influencers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("influencer %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLooseNetworkDegrees(t *testing.T) {
	agents := makeAgents(20)
	g := Build(LooseNetwork, agents, rand.New(rand.NewSource(1)))

	if g.NodeCount() != 20 {
		t.Fatalf("expected 20 nodes, got %d", g.NodeCount())
	}
	for _, a := range agents {
		d := g.OutDegree(a.Name)
		if d < 1 || d > 4 {
			t.Errorf("agent %s out-degree %d outside [1,4]", a.Name, d)
		}
	}
}

func TestLooseNetworkTinyPopulation(t *testing.T) {
	agents := makeAgents(2)
	g := Build(LooseNetwork, agents, rand.New(rand.NewSource(2)))

	// Degree is capped at n-1, so each agent connects to the single other.
	for _, a := range agents {
		if d := g.OutDegree(a.Name); d > 1 {
			t.Errorf("agent %s out-degree %d exceeds population cap", a.Name, d)
		}
	}
}

func TestEchoChamberNoSelfLoops(t *testing.T) {
	agents := makeAgents(15)
	g := Build(EchoChamber, agents, rand.New(rand.NewSource(3)))

	for _, a := range agents {
		if g.InfluenceWeight(a.Name, a.Name) != 0 {
			t.Errorf("agent %s has a self-loop", a.Name)
		}
	}
	// At neutral opinions similarity is 1, so some edges must have formed.
	if g.EdgeCount() == 0 {
		t.Error("echo chamber over a neutral population produced no edges")
	}
}

func TestRealFollowerStructure(t *testing.T) {
	// Unambiguous influence scores so the top-20% cut is deterministic.
	agents := makeAgents(10)
	for i, a := range agents {
		a.Genome.InfluenceScore = 0.05 + float64(i)*0.1
	}
	// agent_09 (0.95) and agent_08 (0.85) are the top 20%.
	g := Build(RealFollower, agents, rand.New(rand.NewSource(4)))

	influencers := map[string]bool{"agent_09": true, "agent_08": true}
	for _, a := range agents {
		if influencers[a.Name] {
			if d := g.OutDegree(a.Name); d != 0 {
				t.Errorf("influencer %s should have no outgoing follow edges, got %d", a.Name, d)
			}
			continue
		}
		d := g.OutDegree(a.Name)
		if d < 1 || d > 2 {
			t.Errorf("follower %s follows %d influencers, want 1-2", a.Name, d)
		}
		for _, target := range g.FollowersOf(a.Name) {
			if !influencers[target] {
				t.Errorf("follower %s follows non-influencer %s", a.Name, target)
			}
			want := 0.0
			switch target {
			case "agent_09":
				want = 0.95
			case "agent_08":
				want = 0.85
			}
			if got := g.InfluenceWeight(a.Name, target); abs(got-want) > 1e-9 {
				t.Errorf("edge %s->%s weight %f, want %f", a.Name, target, got, want)
			}
		}
	}
}

func TestRealFollowerSingleAgent(t *testing.T) {
	agents := makeAgents(1)
	g := Build(RealFollower, agents, rand.New(rand.NewSource(5)))

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("single agent cannot follow anyone, got %d edges", g.EdgeCount())
	}
}

func TestBuildWeightsPositive(t *testing.T) {
	agents := makeAgents(20)
	for _, topology := range []Topology{EchoChamber, LooseNetwork, RealFollower} {
		t.Run(string(topology), func(t *testing.T) {
			g := Build(topology, agents, rand.New(rand.NewSource(6)))
			for _, a := range agents {
				for _, target := range g.FollowersOf(a.Name) {
					w := g.InfluenceWeight(a.Name, target)
					if w <= 0 || w > 1 {
						t.Errorf("edge %s->%s weight %f outside (0,1]", a.Name, target, w)
					}
				}
			}
		})
	}
}

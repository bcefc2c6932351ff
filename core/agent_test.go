package core

import (
	"fmt"
	"testing"
)

func testGenome(role Role) Genome {
	return Genome{
		Role:            role,
		Traits:          []Trait{TraitEarlyAdopter},
		InfluenceScore:  0.5,
		AttentionBudget: 100,
	}
}

func TestNewAgentStartsNeutral(t *testing.T) {
	agent := NewAgent("Customer_1", testGenome(RoleCustomer))

	if agent.Opinion != 0.5 {
		t.Errorf("expected neutral opinion 0.5, got %f", agent.Opinion)
	}
	if agent.AttentionLeft != 100 {
		t.Errorf("expected full attention budget, got %d", agent.AttentionLeft)
	}
	if len(agent.Memory) != 0 {
		t.Errorf("expected empty memory, got %d entries", len(agent.Memory))
	}
}

func TestShiftOpinionClamps(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		delta float64
		want  float64
	}{
		{"within range", 0.5, 0.2, 0.7},
		{"clamps high", 0.9, 0.5, 1.0},
		{"clamps low", 0.1, -0.5, 0.0},
		{"negative within range", 0.5, -0.2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := NewAgent("a", testGenome(RoleCustomer))
			agent.Opinion = tt.start
			agent.ShiftOpinion(tt.delta)
			if agent.Opinion != tt.want {
				t.Errorf("opinion = %f, want %f", agent.Opinion, tt.want)
			}
		})
	}
}

func TestSpendAttention(t *testing.T) {
	agent := NewAgent("a", testGenome(RoleCustomer))

	agent.SpendAttention(30)
	if agent.AttentionLeft != 70 {
		t.Errorf("expected 70 attention left, got %d", agent.AttentionLeft)
	}

	// Overspending floors at zero instead of going negative.
	agent.SpendAttention(500)
	if agent.AttentionLeft != 0 {
		t.Errorf("expected attention floored at 0, got %d", agent.AttentionLeft)
	}

	// Negative spend is ignored.
	agent.AttentionLeft = 50
	agent.SpendAttention(-10)
	if agent.AttentionLeft != 50 {
		t.Errorf("negative spend should be ignored, got %d", agent.AttentionLeft)
	}
}

func TestRememberEvictsOldest(t *testing.T) {
	agent := NewAgent("a", testGenome(RoleCustomer))

	for i := 0; i < MemoryCapacity+5; i++ {
		agent.Remember(fmt.Sprintf("entry %d", i))
	}

	if len(agent.Memory) != MemoryCapacity {
		t.Fatalf("expected memory capped at %d, got %d", MemoryCapacity, len(agent.Memory))
	}
	if agent.Memory[0] != "entry 5" {
		t.Errorf("expected oldest surviving entry to be 'entry 5', got %q", agent.Memory[0])
	}
	if agent.LastMemory() != fmt.Sprintf("entry %d", MemoryCapacity+4) {
		t.Errorf("unexpected last memory %q", agent.LastMemory())
	}
}

func TestLastMemoryEmpty(t *testing.T) {
	agent := NewAgent("a", testGenome(RoleCustomer))
	if agent.LastMemory() != "" {
		t.Errorf("expected empty last memory, got %q", agent.LastMemory())
	}
}

func TestContextIsSnapshot(t *testing.T) {
	agent := NewAgent("a", testGenome(RoleInfluencer))
	agent.Remember("first impression")

	snapshot := agent.Context()
	agent.Remember("second impression")
	agent.ShiftOpinion(0.3)

	if len(snapshot.Memory) != 1 {
		t.Errorf("snapshot memory should not grow, got %d entries", len(snapshot.Memory))
	}
	if snapshot.Opinion != 0.5 {
		t.Errorf("snapshot opinion should stay at 0.5, got %f", snapshot.Opinion)
	}
}

func TestHasTrait(t *testing.T) {
	genome := testGenome(RoleCustomer)
	if !genome.HasTrait(TraitEarlyAdopter) {
		t.Error("expected early_adopter trait")
	}
	if genome.HasTrait(TraitSkeptic) {
		t.Error("did not expect skeptic trait")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5) = %f", got)
	}
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.5) = %f", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Errorf("Clamp(0.25) = %f", got)
	}
}

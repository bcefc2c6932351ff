package core

// Role identifies the market segment an agent simulates.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleCompetitor   Role = "competitor"
	RoleInfluencer   Role = "influencer"
	RoleInternalTeam Role = "internal_team"
)

// Trait is a personality tag that biases how an agent reacts to features.
type Trait string

const (
	TraitEarlyAdopter Trait = "early_adopter"
	TraitLateMajority Trait = "late_majority"
	TraitLaggard      Trait = "laggard"
	TraitInfluencer   Trait = "influencer"
	TraitSkeptic      Trait = "skeptic"
	TraitEnthusiast   Trait = "enthusiast"
)

// AllTraits lists every personality tag an agent can carry.
var AllTraits = []Trait{
	TraitEarlyAdopter,
	TraitLateMajority,
	TraitLaggard,
	TraitInfluencer,
	TraitSkeptic,
	TraitEnthusiast,
}

// Demographics describes who the agent is. Fields are role-dependent;
// internal-team agents only carry TeamRole.
type Demographics struct {
	Age         int    `json:"age,omitempty"`
	IncomeLevel string `json:"income_level,omitempty"`
	Location    string `json:"location,omitempty"`
	Education   string `json:"education,omitempty"`
	TeamRole    string `json:"team_role,omitempty"`
}

// Genome is the immutable trait bundle that defines an agent's behavioral
// profile. It never changes after the agent is created.
type Genome struct {
	Role            Role               `json:"role"`
	Demographics    Demographics       `json:"demographics"`
	Psychographics  map[string]float64 `json:"psychographics"`
	Traits          []Trait            `json:"personality_traits"`
	InfluenceScore  float64            `json:"influence_score"`
	AttentionBudget int                `json:"attention_budget"`
}

// HasTrait reports whether the genome carries the given personality tag.
func (g Genome) HasTrait(t Trait) bool {
	for _, have := range g.Traits {
		if have == t {
			return true
		}
	}
	return false
}

// MemoryCapacity bounds an agent's reasoning log; the oldest entry is
// evicted first.
const MemoryCapacity = 10

// Agent is a single synthetic market participant. The genome is fixed at
// creation; opinion, attention and memory mutate as the simulation runs.
type Agent struct {
	Name          string             `json:"name"`
	Genome        Genome             `json:"genome"`
	Opinion       float64            `json:"opinion"`
	AttentionLeft int                `json:"attention_left"`
	Memory        []string           `json:"memory"`
	Relationships map[string]float64 `json:"relationships"`
}

// NewAgent creates an agent at the neutral opinion with a full attention
// budget.
func NewAgent(name string, genome Genome) *Agent {
	return &Agent{
		Name:          name,
		Genome:        genome,
		Opinion:       0.5,
		AttentionLeft: genome.AttentionBudget,
		Memory:        make([]string, 0, MemoryCapacity),
		Relationships: make(map[string]float64),
	}
}

// ShiftOpinion applies delta to the agent's opinion, clamped to [0,1].
func (a *Agent) ShiftOpinion(delta float64) {
	a.Opinion = Clamp(a.Opinion+delta, 0, 1)
}

// SpendAttention deducts spend from the remaining attention budget,
// flooring at zero.
func (a *Agent) SpendAttention(spend int) {
	if spend < 0 {
		return
	}
	a.AttentionLeft -= spend
	if a.AttentionLeft < 0 {
		a.AttentionLeft = 0
	}
}

// Remember appends a reasoning entry, evicting the oldest once the log is
// at capacity.
func (a *Agent) Remember(entry string) {
	a.Memory = append(a.Memory, entry)
	if len(a.Memory) > MemoryCapacity {
		a.Memory = a.Memory[len(a.Memory)-MemoryCapacity:]
	}
}

// LastMemory returns the most recent reasoning entry, or "" if the agent
// has not analyzed anything yet.
func (a *Agent) LastMemory() string {
	if len(a.Memory) == 0 {
		return ""
	}
	return a.Memory[len(a.Memory)-1]
}

// Context snapshots the agent state an analysis backend is allowed to see.
func (a *Agent) Context() AgentContext {
	memory := make([]string, len(a.Memory))
	copy(memory, a.Memory)
	return AgentContext{
		Name:          a.Name,
		Role:          a.Genome.Role,
		Genome:        a.Genome,
		Opinion:       a.Opinion,
		Memory:        memory,
		AttentionLeft: a.AttentionLeft,
	}
}

// Summarize reduces the agent to the report-facing view of its final state.
func (a *Agent) Summarize() AgentSummary {
	return AgentSummary{
		Name:           a.Name,
		Role:           a.Genome.Role,
		FinalOpinion:   a.Opinion,
		InfluenceScore: a.Genome.InfluenceScore,
		AttentionLeft:  a.AttentionLeft,
		Traits:         a.Genome.Traits,
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

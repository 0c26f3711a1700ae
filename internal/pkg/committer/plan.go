package committer

import "cloud.google.com/go/spanner"

// Plan collects Spanner mutations that must commit together.
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// PlanOf builds a plan from the given mutations, skipping nils.
func PlanOf(ms ...*spanner.Mutation) *Plan {
	p := NewPlan()
	for _, m := range ms {
		p.Add(m)
	}
	return p
}

func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}

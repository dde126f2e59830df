// Package scheduling implements the island-model genetic algorithm that
// turns a lot/machine/process-time problem into a dispatch schedule.
//
// The core types mirror the data model of a single scheduling round:
// a Problem is the immutable input, a Chromosome is a candidate
// assignment of lots to machines, an Evaluator decodes a Chromosome into
// a Schedule and scores it, and an Archipelago evolves many Islands of
// Chromosomes in parallel, migrating individuals between them on a fixed
// topology.
package scheduling

import "fmt"

// Problem is the immutable input to one scheduling round: an ordered list
// of lots, an ordered list of machines, and the L×M processing-time
// matrix. ProcessTimes[l][m] <= 0 means lot l is incompatible with
// machine m.
type Problem struct {
	Lots         []string
	Machines     []string
	ProcessTimes [][]float64
}

// LotCount returns the number of lots in the problem.
func (p *Problem) LotCount() int {
	return len(p.Lots)
}

// MachineCount returns the number of machines in the problem.
func (p *Problem) MachineCount() int {
	return len(p.Machines)
}

// Compatible reports whether lot l can run on machine m.
func (p *Problem) Compatible(l, m int) bool {
	return l >= 0 && l < len(p.ProcessTimes) &&
		m >= 0 && m < len(p.ProcessTimes[l]) &&
		p.ProcessTimes[l][m] > 0
}

// Validate checks the §3 invariants: non-empty lots/machines, a
// rectangular matrix, and at least one compatible machine per lot.
func (p *Problem) Validate() error {
	if len(p.Lots) == 0 {
		return &InvalidProblemError{Reason: "no lots"}
	}
	if len(p.Machines) == 0 {
		return &InvalidProblemError{Reason: "no machines"}
	}
	if len(p.ProcessTimes) != len(p.Lots) {
		return &InvalidProblemError{Reason: fmt.Sprintf(
			"process-time matrix has %d rows, want %d", len(p.ProcessTimes), len(p.Lots))}
	}
	for l, row := range p.ProcessTimes {
		if len(row) != len(p.Machines) {
			return &InvalidProblemError{Reason: fmt.Sprintf(
				"process-time row %d has %d columns, want %d", l, len(row), len(p.Machines))}
		}
	}
	for l := range p.Lots {
		if !p.hasCompatibleMachine(l) {
			return &InvalidProblemError{Reason: fmt.Sprintf(
				"lot %q has no compatible machine", p.Lots[l])}
		}
	}
	return nil
}

func (p *Problem) hasCompatibleMachine(l int) bool {
	for m := range p.Machines {
		if p.Compatible(l, m) {
			return true
		}
	}
	return false
}

// compatibleMachines returns the indices of machines compatible with lot l.
func (p *Problem) compatibleMachines(l int) []int {
	out := make([]int, 0, len(p.Machines))
	for m := range p.Machines {
		if p.Compatible(l, m) {
			out = append(out, m)
		}
	}
	return out
}

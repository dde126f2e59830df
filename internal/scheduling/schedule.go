package scheduling

// Assignment is one (lot, machine) placement in a decoded Schedule.
type Assignment struct {
	LotIndex      int
	LotID         string
	MachineIndex  int
	MachineID     string
	ProcessingTime float64
	StartTime      float64
	EndTime        float64
}

// Schedule is the phenotype decoded from a Chromosome: the full list of
// assignments, a secondary per-machine index in execution order, and
// aggregate metrics.
type Schedule struct {
	Assignments       []Assignment
	MachineAssignments [][]Assignment

	Makespan     float64
	MeanFlowTime float64
	MaxTardiness float64
}

// Clear resets the schedule to its zero value in place.
func (s *Schedule) Clear() {
	s.Assignments = nil
	s.MachineAssignments = nil
	s.Makespan = 0
	s.MeanFlowTime = 0
	s.MaxTardiness = 0
}

func (s *Schedule) addAssignment(a Assignment) {
	s.Assignments = append(s.Assignments, a)
	for len(s.MachineAssignments) <= a.MachineIndex {
		s.MachineAssignments = append(s.MachineAssignments, nil)
	}
	s.MachineAssignments[a.MachineIndex] = append(s.MachineAssignments[a.MachineIndex], a)
}

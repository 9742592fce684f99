package play

// streak counts consecutive correct answers within one quiz.
type streak struct {
	current int
	best    int
	// milestone is set when the last answer reached a callout threshold.
	milestone bool
}

// nextMilestone returns the streak length after current that earns a
// callout: 5, 10, 15, 20 and every 5 beyond.
func nextMilestone(current int) int {
	for _, t := range []int{5, 10, 15, 20} {
		if t > current {
			return t
		}
	}
	return (current/5 + 1) * 5
}

func (s *streak) record(correct bool) {
	if !correct {
		s.current = 0
		s.milestone = false
		return
	}
	s.milestone = nextMilestone(s.current) == s.current+1
	s.current++
	s.best = max(s.best, s.current)
}

package trainer

import (
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/coolbeans/memodrill/pkg/memo"
)

// Stats is the running score of a session.
type Stats struct {
	Correct   int
	Incorrect int
	TotalTime time.Duration
	Fastest   time.Duration
	Slowest   time.Duration
	// Misses counts wrong answers per reference letter.
	Misses map[memo.Letter]int
}

// Total returns the number of answered prompts.
func (s Stats) Total() int {
	return s.Correct + s.Incorrect
}

// Accuracy returns the fraction of correct answers, or 0 before any answer.
func (s Stats) Accuracy() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total())
}

// Mean returns the mean response time.
func (s Stats) Mean() time.Duration {
	if s.Total() == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Total())
}

func (s *Stats) add(r Result) {
	if r.Correct {
		s.Correct++
	} else {
		s.Incorrect++
		if s.Misses == nil {
			s.Misses = make(map[memo.Letter]int)
		}
		s.Misses[r.Reference]++
	}
	s.TotalTime += r.Elapsed
	if s.Total() == 1 || r.Elapsed < s.Fastest {
		s.Fastest = r.Elapsed
	}
	if r.Elapsed > s.Slowest {
		s.Slowest = r.Elapsed
	}
}

func (s Stats) clone() Stats {
	s.Misses = maps.Clone(s.Misses)
	return s
}

// WriteSummary prints the end-of-session block.
func (s Stats) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "*** Session Stats ***\nCorrect: %d/%d\n", s.Correct, s.Total())
	if err != nil {
		return err
	}
	if s.Total() > 0 {
		_, err = fmt.Fprintf(w, "Mean response: %.2fs (fastest %.2fs, slowest %.2fs)\n",
			s.Mean().Seconds(), s.Fastest.Seconds(), s.Slowest.Seconds())
	}
	return err
}

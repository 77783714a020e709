package trainer

import (
	"fmt"
	"time"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/memo"
	"github.com/coolbeans/memodrill/pkg/render"
)

// Prompt is one piece shown to the user.
type Prompt struct {
	Piece   cube.PieceType
	Tuple   cube.Tuple
	Drawing *render.Drawing
}

// Result is one answered prompt.
type Result struct {
	Time      time.Time
	Piece     cube.PieceType
	Tuple     cube.Tuple
	Reference memo.Letter
	Input     string
	Correct   bool
	Elapsed   time.Duration
}

// Quiz ties sampling, rendering and answer checking together and keeps the
// session score.
type Quiz struct {
	sampler *Sampler
	checker *Checker
	now     func() time.Time
	stats   Stats
}

// NewQuiz creates a quiz over enc using sampler for piece selection.
func NewQuiz(enc *memo.Encoder, sampler *Sampler) *Quiz {
	return &Quiz{
		sampler: sampler,
		checker: NewChecker(enc),
		now:     time.Now,
	}
}

// SetClock replaces the wall clock used to timestamp results.
func (q *Quiz) SetClock(now func() time.Time) {
	q.now = now
}

// Next samples a piece of type p and renders it.
func (q *Quiz) Next(p cube.PieceType) (Prompt, error) {
	tuple := q.sampler.Sample(p)
	d, err := render.Render(tuple, p)
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to render %s: %w", tuple, err)
	}
	return Prompt{Piece: p, Tuple: tuple, Drawing: d}, nil
}

// Answer checks input against the prompt and updates the score.
func (q *Quiz) Answer(p Prompt, input string, elapsed time.Duration) (Result, error) {
	ref, err := q.checker.Reference(p.Tuple, p.Piece)
	if err != nil {
		return Result{}, err
	}
	correct, err := q.checker.IsCorrect(p.Tuple, input, p.Piece)
	if err != nil {
		return Result{}, err
	}
	r := Result{
		Time:      q.now(),
		Piece:     p.Piece,
		Tuple:     p.Tuple,
		Reference: ref,
		Input:     input,
		Correct:   correct,
		Elapsed:   elapsed,
	}
	q.stats.add(r)
	return r, nil
}

// Stats returns a snapshot of the session score.
func (q *Quiz) Stats() Stats {
	return q.stats.clone()
}

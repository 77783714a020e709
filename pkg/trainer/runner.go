package trainer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/google/uuid"
)

// QuitCommand ends an interactive session.
const QuitCommand = "quit"

// Presenter shows a prompt to the user.
type Presenter interface {
	Present(p Prompt) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(p Prompt) error

// Present calls f(p).
func (f PresenterFunc) Present(p Prompt) error {
	return f(p)
}

// Recorder persists answered prompts.
type Recorder interface {
	Record(r Result) error
}

// RunnerOptions configures an interactive session.
type RunnerOptions struct {
	Piece     cube.PieceType
	Presenter Presenter
	Recorder  Recorder
	Logger    logger.Logger
	// Reveal prints the reference letter after a wrong answer.
	Reveal bool
	// Clock measures response latency. Defaults to time.Now.
	Clock func() time.Time
	// SessionID tags log records. A random UUID is used when empty.
	SessionID string
}

// Runner is the interactive prompt/answer loop.
type Runner struct {
	quiz *Quiz
	opts RunnerOptions
	log  logger.Logger
}

// NewRunner creates a runner for quiz.
func NewRunner(quiz *Quiz, opts RunnerOptions) *Runner {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{
		quiz: quiz,
		opts: opts,
		log: log.Module("quiz").With(
			logger.String("session_id", opts.SessionID),
			logger.String("piece", opts.Piece.String()),
		),
	}
}

// SessionID returns the identifier attached to this session's log records.
func (r *Runner) SessionID() string {
	return r.opts.SessionID
}

// Run prompts until the user types quit, input ends, or ctx is cancelled.
// Waiting for an answer has no timeout; latency is measured, not enforced.
// The session summary is written to out in every case.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return r.RunLines(ctx, ReadLines(ctx, in), out)
}

// RunLines is Run over a channel from ReadLines, which may outlive the
// session.
func (r *Runner) RunLines(ctx context.Context, lines <-chan Line, out io.Writer) (Stats, error) {
	piece := r.opts.Piece
	r.log.Info("session started")

	finish := func(err error) (Stats, error) {
		stats := r.quiz.Stats()
		if werr := stats.WriteSummary(out); werr != nil && err == nil {
			err = werr
		}
		r.log.Info("session finished",
			logger.Int("correct", stats.Correct),
			logger.Int("total", stats.Total()))
		return stats, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		prompt, err := r.quiz.Next(piece)
		if err != nil {
			return finish(err)
		}
		if r.opts.Presenter != nil {
			if err := r.opts.Presenter.Present(prompt); err != nil {
				return finish(fmt.Errorf("failed to present piece: %w", err))
			}
		}

		fmt.Fprintf(out, "Which %s is this?\n", piece)
		start := r.opts.Clock()
		text, ok, err := NextLine(ctx, lines)
		if !ok {
			return finish(err)
		}
		elapsed := r.opts.Clock().Sub(start)
		input := strings.ToLower(strings.TrimSpace(text))

		if input == QuitCommand {
			fmt.Fprintln(out, "Exiting the program.")
			return finish(nil)
		}

		result, err := r.quiz.Answer(prompt, input, elapsed)
		if err != nil {
			return finish(fmt.Errorf("failed to check answer for %s: %w", prompt.Tuple, err))
		}

		if result.Correct {
			fmt.Fprintf(out, "Correct! (t: %.1f)\n", elapsed.Seconds())
		} else {
			fmt.Fprintf(out, "Incorrect! (t: %.1f)\n", elapsed.Seconds())
			if r.opts.Reveal {
				fmt.Fprintf(out, "It was %s.\n", result.Reference)
			}
		}
		r.log.Debug("answered",
			logger.String("tuple", result.Tuple.String()),
			logger.String("reference", result.Reference.String()),
			logger.Bool("correct", result.Correct),
			logger.Duration("elapsed", elapsed))

		if r.opts.Recorder != nil {
			if err := r.opts.Recorder.Record(result); err != nil {
				return finish(fmt.Errorf("failed to record answer: %w", err))
			}
		}
	}
}

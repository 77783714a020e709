package trainer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCorrectIgnoresCase(t *testing.T) {
	enc := memo.MustDefault()
	c := NewChecker(enc)

	for _, p := range cube.PieceTypes {
		for _, e := range enc.Table(p).Entries() {
			upper, err := c.IsCorrect(e.Tuple, e.Letter.String(), p)
			require.NoError(t, err)
			lower, err := c.IsCorrect(e.Tuple, strings.ToLower(e.Letter.String()), p)
			require.NoError(t, err)
			assert.True(t, upper, "%s %s", p, e.Position)
			assert.Equal(t, upper, lower)
		}
	}
}

func TestIsCorrectRejectsEveryOtherAnswer(t *testing.T) {
	enc := memo.MustDefault()
	c := NewChecker(enc)
	tuple := cube.MustTuple(cube.Red, cube.White)

	for r := 'a'; r <= 'z'; r++ {
		ok, err := c.IsCorrect(tuple, string(r), cube.Edge)
		require.NoError(t, err)
		assert.Equal(t, r == 'c', ok, string(r))
	}

	for _, answer := range []string{"", "cc", "c ", "uf"} {
		ok, err := c.IsCorrect(tuple, answer, cube.Edge)
		require.NoError(t, err)
		assert.False(t, ok, "%q", answer)
	}
}

func TestIsCorrectCornerScenario(t *testing.T) {
	enc := memo.MustDefault()
	c := NewChecker(enc)
	tuple := cube.MustTuple(cube.Red, cube.Green, cube.White)

	ref, err := enc.Corners().PositionLetter("URF")
	require.NoError(t, err)

	ok, err := c.IsCorrect(tuple, ref.String(), cube.Corner)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsCorrect(tuple, "z", cube.Corner)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsCorrectRejectsUnknownTuple(t *testing.T) {
	c := NewChecker(memo.MustDefault())

	_, err := c.IsCorrect(cube.MustTuple(cube.Red, cube.Orange), "a", cube.Edge)
	assert.ErrorIs(t, err, memo.ErrLookup)

	_, err = c.IsCorrect(cube.MustTuple(cube.Red, cube.White), "c", cube.Corner)
	assert.ErrorIs(t, err, memo.ErrLookup)
}

// chiSquareCritical is the 0.999 quantile of the chi-square distribution
// with 23 degrees of freedom.
const chiSquareCritical = 49.73

func TestSamplerIsUniform(t *testing.T) {
	enc := memo.MustDefault()
	const draws = 24000

	for _, p := range cube.PieceTypes {
		t.Run(p.String(), func(t *testing.T) {
			s := NewSampler(enc, 42)
			counts := make(map[cube.Tuple]int, memo.Size)
			for i := 0; i < draws; i++ {
				tuple := s.Sample(p)
				require.True(t, tuple.Fits(p))
				counts[tuple]++
			}
			require.Len(t, counts, memo.Size)

			expected := float64(draws) / memo.Size
			var chi float64
			for _, n := range counts {
				d := float64(n) - expected
				chi += d * d / expected
			}
			assert.Less(t, chi, chiSquareCritical)
		})
	}
}

func TestSamplerIsReproducible(t *testing.T) {
	enc := memo.MustDefault()
	a := NewSampler(enc, 7)
	b := NewSampler(enc, 7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Sample(cube.Corner), b.Sample(cube.Corner))
	}

	r := NewRandomSampler(enc)
	idx := r.Index()
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, memo.Size)
}

func TestQuizAnswerUpdatesStats(t *testing.T) {
	enc := memo.MustDefault()
	q := NewQuiz(enc, NewSampler(enc, 1))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q.SetClock(func() time.Time { return fixed })

	prompt, err := q.Next(cube.Edge)
	require.NoError(t, err)
	require.NotNil(t, prompt.Drawing)
	assert.Equal(t, prompt.Tuple, prompt.Drawing.Tuple)

	ref, err := enc.Letter(prompt.Tuple, cube.Edge)
	require.NoError(t, err)

	r, err := q.Answer(prompt, strings.ToLower(ref.String()), 2*time.Second)
	require.NoError(t, err)
	assert.True(t, r.Correct)
	assert.Equal(t, fixed, r.Time)
	assert.Equal(t, ref, r.Reference)

	r, err = q.Answer(prompt, "wrong", time.Second)
	require.NoError(t, err)
	assert.False(t, r.Correct)

	stats := q.Stats()
	assert.Equal(t, 1, stats.Correct)
	assert.Equal(t, 1, stats.Incorrect)
	assert.Equal(t, 2, stats.Total())
	assert.InDelta(t, 0.5, stats.Accuracy(), 1e-9)
	assert.Equal(t, 1500*time.Millisecond, stats.Mean())
	assert.Equal(t, time.Second, stats.Fastest)
	assert.Equal(t, 2*time.Second, stats.Slowest)
	assert.Equal(t, 1, stats.Misses[ref])

	stats.Misses[ref] = 99
	assert.Equal(t, 1, q.Stats().Misses[ref], "snapshot must not alias")
}

type recorderFunc func(Result) error

func (f recorderFunc) Record(r Result) error { return f(r) }

// scriptedSession answers each presented prompt with the next entry of
// answers, where "" means the correct letter. Once answers run out it types
// quit. Answers reach the runner through a pipe, so the reader blocks
// between prompts like a terminal does.
func scriptedSession(t *testing.T, enc *memo.Encoder, answers []string) (Presenter, io.Reader) {
	t.Helper()
	pr, pw := io.Pipe()
	typed := make(chan string, len(answers)+1)
	go func() {
		defer pw.Close()
		for line := range typed {
			if _, err := io.WriteString(pw, line+"\n"); err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() { close(typed) })

	n := 0
	return PresenterFunc(func(p Prompt) error {
		if n >= len(answers) {
			typed <- QuitCommand
			return nil
		}
		answer := answers[n]
		n++
		if answer == "" {
			ref, err := enc.Letter(p.Tuple, p.Piece)
			if err != nil {
				return err
			}
			answer = strings.ToLower(ref.String())
		}
		typed <- answer
		return nil
	}), pr
}

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestRunnerSession(t *testing.T) {
	enc := memo.MustDefault()
	presenter, input := scriptedSession(t, enc, []string{"", "zz", "", "  "})

	var recorded []Result
	runner := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{
		Piece:     cube.Corner,
		Presenter: presenter,
		Recorder: recorderFunc(func(r Result) error {
			recorded = append(recorded, r)
			return nil
		}),
		Reveal: true,
		Clock:  fakeClock(1500 * time.Millisecond),
	})
	assert.NotEmpty(t, runner.SessionID())

	var out bytes.Buffer
	stats, err := runner.Run(context.Background(), input, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Correct)
	assert.Equal(t, 2, stats.Incorrect)
	require.Len(t, recorded, 4)
	assert.Equal(t, "zz", recorded[1].Input)
	assert.Equal(t, "", recorded[3].Input, "blank answers count as wrong")

	text := out.String()
	assert.Equal(t, 5, strings.Count(text, "Which corner is this?"))
	assert.Equal(t, 2, strings.Count(text, "Correct! (t: 1.5)"))
	assert.Equal(t, 2, strings.Count(text, "Incorrect! (t: 1.5)"))
	assert.Contains(t, text, "It was "+recorded[1].Reference.String()+".")
	assert.Contains(t, text, "Exiting the program.")
	assert.Contains(t, text, "*** Session Stats ***\nCorrect: 2/4\n")
}

func TestRunnerQuitIsCaseInsensitive(t *testing.T) {
	enc := memo.MustDefault()
	runner := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{Piece: cube.Edge})

	var out bytes.Buffer
	stats, err := runner.Run(context.Background(), strings.NewReader("QUIT\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total())
	assert.Contains(t, out.String(), "Correct: 0/0")
}

func TestRunnerEndsOnEOF(t *testing.T) {
	enc := memo.MustDefault()
	runner := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{Piece: cube.Edge})

	var out bytes.Buffer
	stats, err := runner.Run(context.Background(), strings.NewReader("a\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total())
}

func TestRunnerHonoursCancellation(t *testing.T) {
	enc := memo.MustDefault()
	runner := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{Piece: cube.Edge})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := runner.Run(ctx, strings.NewReader("a\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "Correct: 0/0")
}

func TestRunnerStopsOnRecorderFailure(t *testing.T) {
	enc := memo.MustDefault()
	boom := errors.New("disk full")
	runner := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{
		Piece:    cube.Edge,
		Recorder: recorderFunc(func(Result) error { return boom }),
	})

	var out bytes.Buffer
	_, err := runner.Run(context.Background(), strings.NewReader("a\nb\n"), &out)
	assert.ErrorIs(t, err, boom)
}

func TestRunLinesSharesInputAcrossSessions(t *testing.T) {
	enc := memo.MustDefault()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lines := ReadLines(ctx, strings.NewReader("zz\nquit\nQuit\n"))

	first := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{Piece: cube.Edge})
	var out bytes.Buffer
	stats, err := first.RunLines(ctx, lines, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Incorrect)

	second := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{Piece: cube.Corner})
	out.Reset()
	stats, err = second.RunLines(ctx, lines, &out)
	require.NoError(t, err)
	assert.Zero(t, stats.Total())
	assert.Contains(t, out.String(), "Exiting the program.")
}

func TestRunnerCancelsWhileWaitingForInput(t *testing.T) {
	enc := memo.MustDefault()
	runner := NewRunner(NewQuiz(enc, NewSampler(enc, 3)), RunnerOptions{Piece: cube.Corner})

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	var out bytes.Buffer
	_, err := runner.Run(ctx, pr, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "Which corner is this?")
	assert.Contains(t, out.String(), "*** Session Stats ***")
}

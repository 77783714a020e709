package trainer

import (
	"bufio"
	"context"
	"io"
)

// Line is one line of user input, or the error that ended the input.
type Line struct {
	Text string
	Err  error
}

// ReadLines scans r on its own goroutine so a blocked read never holds up
// cancellation. The channel is closed at end of input or when ctx is done.
// A failed read is delivered as a final Line with Err set.
//
// A read that never returns pins the goroutine until r yields data or EOF,
// even after ctx is done. Callers that prompt repeatedly on one stream
// should share a single channel rather than call ReadLines per prompt loop.
func ReadLines(ctx context.Context, r io.Reader) <-chan Line {
	lines := make(chan Line)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- Line{Text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- Line{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return lines
}

// NextLine waits for the next line from a ReadLines channel. ok is false at
// end of input; err is set on a read failure or when ctx is done.
func NextLine(ctx context.Context, lines <-chan Line) (text string, ok bool, err error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case l, open := <-lines:
		if !open {
			return "", false, nil
		}
		if l.Err != nil {
			return "", false, l.Err
		}
		return l.Text, true, nil
	}
}

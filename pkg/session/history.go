package session

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/coolbeans/memodrill/pkg/cube"
)

// Record is one parsed log row.
type Record struct {
	Time      time.Time
	Tuple     cube.Tuple
	Reference string
	Input     string
	Elapsed   time.Duration
}

// Correct reports whether the logged input matched the reference.
func (r Record) Correct() bool {
	return strings.EqualFold(r.Input, r.Reference)
}

// ReadLog parses a session log. Both header layouts are accepted.
func ReadLog(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read log header: %w", err)
	}
	if !equalHeader(head, Header) && !equalHeader(head, CornerHeader) {
		return nil, fmt.Errorf("unexpected log header %q", head)
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

// ReadLogFile parses the session log at path.
func ReadLogFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	records, err := ReadLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	ts, err := time.ParseInLocation(TimestampLayout, row[0], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("bad timestamp %q: %w", row[0], err)
	}
	tuple, err := cube.ParseTuple(row[1])
	if err != nil {
		return Record{}, fmt.Errorf("bad piece %q: %w", row[1], err)
	}
	secs, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad response time %q: %w", row[4], err)
	}
	return Record{
		Time:      ts,
		Tuple:     tuple,
		Reference: row[2],
		Input:     row[3],
		Elapsed:   time.Duration(secs * float64(time.Second)),
	}, nil
}

func equalHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != b[i] {
			return false
		}
	}
	return true
}

// LetterSummary aggregates the rows of one reference letter.
type LetterSummary struct {
	Letter   string
	Attempts int
	Correct  int
	Mean     time.Duration
}

// Accuracy returns the fraction of correct attempts.
func (l LetterSummary) Accuracy() float64 {
	if l.Attempts == 0 {
		return 0
	}
	return float64(l.Correct) / float64(l.Attempts)
}

// Summary aggregates many log rows.
type Summary struct {
	Attempts int
	Correct  int
	Mean     time.Duration
	// Letters is ordered from the weakest letter to the strongest: lowest
	// accuracy first, then slowest mean response.
	Letters []LetterSummary
}

// Accuracy returns the fraction of correct attempts.
func (s Summary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Summarize aggregates records.
func Summarize(records []Record) Summary {
	var s Summary
	var total time.Duration
	byLetter := make(map[string]*LetterSummary)
	letterTime := make(map[string]time.Duration)

	for _, r := range records {
		s.Attempts++
		total += r.Elapsed
		ls, ok := byLetter[r.Reference]
		if !ok {
			ls = &LetterSummary{Letter: r.Reference}
			byLetter[r.Reference] = ls
		}
		ls.Attempts++
		letterTime[r.Reference] += r.Elapsed
		if r.Correct() {
			s.Correct++
			ls.Correct++
		}
	}
	if s.Attempts > 0 {
		s.Mean = total / time.Duration(s.Attempts)
	}

	for letter, ls := range byLetter {
		ls.Mean = letterTime[letter] / time.Duration(ls.Attempts)
		s.Letters = append(s.Letters, *ls)
	}
	sort.Slice(s.Letters, func(i, j int) bool {
		a, b := s.Letters[i], s.Letters[j]
		if a.Accuracy() != b.Accuracy() {
			return a.Accuracy() < b.Accuracy()
		}
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.Letter < b.Letter
	})
	return s
}

// Package pairs manages letter-pair images: the mnemonic word a solver
// associates with every two-letter combination of the memo alphabet.
//
// Pairs are kept in group files named bld_pairs_<L>.csv, one per first
// letter, plus bld_pairs_Z.csv holding every pair that contains a
// "learn last" letter. Each file has the header "letter_pair,image".
package pairs

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	filePrefix = "bld_pairs_"
	fileSuffix = ".csv"

	// LastGroup is the group key of the learn-last file.
	LastGroup = "Z"

	// DefaultLearnLast lists the letters whose pairs are drilled last.
	DefaultLearnLast = "AER"

	emptyCell = "."
)

// Header is the first row of every group file.
var Header = []string{"letter_pair", "image"}

// Pair is one letter pair and its image.
type Pair struct {
	Letters string
	Image   string
}

// Groups partitions pairs for writing.
type Groups struct {
	// Main maps a first letter to its pairs, alphabetically ordered.
	Main map[string][]Pair
	// Last holds the learn-last pairs, alphabetically ordered.
	Last []Pair
}

// GroupFileName returns the file name of group key.
func GroupFileName(key string) string {
	return filePrefix + key + fileSuffix
}

// ImportGrid melts a square table into pairs. The header row lists second
// letters from its second cell on; every following row starts with a first
// letter. Empty cells and cells holding "." are skipped.
func ImportGrid(rows [][]string) ([]Pair, error) {
	if len(rows) == 0 {
		return nil, errors.New("grid is empty")
	}
	header := rows[0]
	if len(header) < 2 {
		return nil, errors.New("grid header has no letter columns")
	}

	var out []Pair
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(row[0])
		if first == "" {
			continue
		}
		for j := 1; j < len(header); j++ {
			second := strings.TrimSpace(header[j])
			if second == "" || j >= len(row) {
				continue
			}
			image := row[j]
			if image == "" || image == emptyCell {
				continue
			}
			out = append(out, Pair{Letters: first + second, Image: image})
		}
	}
	return out, nil
}

// SplitGroups sorts pairs and splits off those containing any learn-last
// letter, in either case.
func SplitGroups(pairs []Pair, learnLast string) Groups {
	sorted := append([]Pair(nil), pairs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Letters < sorted[j].Letters
	})

	learnLast = strings.ToUpper(learnLast)
	g := Groups{Main: make(map[string][]Pair)}
	for _, p := range sorted {
		if learnLast != "" && strings.ContainsAny(strings.ToUpper(p.Letters), learnLast) {
			g.Last = append(g.Last, p)
			continue
		}
		key := firstLetter(p.Letters)
		g.Main[key] = append(g.Main[key], p)
	}
	return g
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// WriteGroups writes one file per main group and the learn-last file, which
// is written even when empty.
func WriteGroups(dir string, g Groups) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create group directory: %w", err)
	}

	keys := make([]string, 0, len(g.Main))
	for k := range g.Main {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var written []string
	for _, k := range keys {
		path := filepath.Join(dir, GroupFileName(k))
		if err := writeGroupFile(path, g.Main[k]); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, GroupFileName(LastGroup))
	if err := writeGroupFile(path, g.Last); err != nil {
		return written, err
	}
	return append(written, path), nil
}

func writeGroupFile(path string, pairs []Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	writeRow(w, Header[0], Header[1])
	for _, p := range pairs {
		writeRow(w, p.Letters, p.Image)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// writeRow writes a two-field row with minimal quoting: a field is quoted
// only when it contains a comma, a double quote or a line break.
func writeRow(w *bufio.Writer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		if strings.ContainsAny(f, ",\"\r\n") {
			w.WriteByte('"')
			w.WriteString(strings.ReplaceAll(f, `"`, `""`))
			w.WriteByte('"')
		} else {
			w.WriteString(f)
		}
	}
	w.WriteByte('\n')
}

// ListGroups finds the group files in dir, keyed by group letter.
func ListGroups(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading group directory %s: %w", dir, err)
	}
	groups := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		parts := strings.Split(name, "_")
		key := firstLetter(parts[len(parts)-1])
		groups[key] = filepath.Join(dir, name)
	}
	return groups, nil
}

// SortedKeys returns the group keys of m in order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadPairs reads group files in order. Values are trimmed; a pair repeated
// in a later file keeps its first position but takes the later image.
func LoadPairs(paths ...string) ([]Pair, error) {
	var out []Pair
	index := make(map[string]int)
	for _, path := range paths {
		pairs, err := readGroupFile(path)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if i, ok := index[p.Letters]; ok {
				out[i].Image = p.Image
				continue
			}
			index[p.Letters] = len(out)
			out = append(out, p)
		}
	}
	return out, nil
}

func readGroupFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open group file: %w", err)
	}
	defer f.Close()

	pairs, err := ReadGroup(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// ReadGroup parses one group file.
func ReadGroup(r io.Reader) ([]Pair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read group header: %w", err)
	}
	pairCol, imageCol := -1, -1
	for i, h := range head {
		switch strings.TrimSpace(h) {
		case Header[0]:
			pairCol = i
		case Header[1]:
			imageCol = i
		}
	}
	if pairCol < 0 || imageCol < 0 {
		return nil, fmt.Errorf("group header %q lacks %q or %q", head, Header[0], Header[1])
	}

	var out []Pair
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if pairCol >= len(row) || imageCol >= len(row) {
			continue
		}
		out = append(out, Pair{
			Letters: strings.TrimSpace(row[pairCol]),
			Image:   strings.TrimSpace(row[imageCol]),
		})
	}
}

// CompareAnswers reports whether input matches correct as a set of
// characters, ignoring case and spaces. Word order and repeated letters do
// not matter.
func CompareAnswers(correct, input string) bool {
	return equalSets(charSet(correct), charSet(input))
}

func charSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range strings.ToLower(strings.ReplaceAll(s, " ", "")) {
		set[r] = struct{}{}
	}
	return set
}

func equalSets(a, b map[rune]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if _, ok := b[r]; !ok {
			return false
		}
	}
	return true
}

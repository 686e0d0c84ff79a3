// Package wordlist loads newline-delimited subdomain-label and TLD lists.
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"subprobe/internal/core/domain"
	"subprobe/internal/platform/errors"
	"subprobe/internal/platform/validator"
)

// Kind selects the validation rules applied to each entry.
type Kind int

const (
	KindLabels Kind = iota
	KindTLDs
)

func (k Kind) String() string {
	if k == KindTLDs {
		return "tlds"
	}
	return "labels"
}

// Options controls how a wordlist is parsed.
type Options struct {
	Kind Kind

	// ICANNOnly drops TLD entries that are not ICANN public suffixes.
	ICANNOnly bool
}

// Stats reports what happened to each input line.
type Stats struct {
	Lines      int
	Accepted   int
	Blank      int
	Comments   int
	Invalid    int
	Filtered   int
	Duplicates int

	// InvalidSamples keeps the first few rejected lines for error reporting.
	InvalidSamples []string
}

const maxInvalidSamples = 5

// Load reads a wordlist file.
func Load(path string, opts Options) (domain.WordList, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.Wrapf(err, "open %s wordlist", opts.Kind)
	}
	defer f.Close()

	list, stats, err := Parse(f, opts)
	if err != nil {
		return nil, stats, errors.Wrapf(err, "%s wordlist %s", opts.Kind, path)
	}
	return list, stats, nil
}

// Parse reads entries from r: one per line, blank lines and '#' comments
// skipped, entries normalized to lowercase ASCII, duplicates removed with the
// first occurrence kept. An empty result is an error.
func Parse(r io.Reader, opts Options) (domain.WordList, Stats, error) {
	var stats Stats
	entries := make([]string, 0, 256)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			stats.Blank++
			continue
		case strings.HasPrefix(line, "#"):
			stats.Comments++
			continue
		}

		entry, ok := normalize(line, opts.Kind)
		if !ok {
			stats.Invalid++
			if len(stats.InvalidSamples) < maxInvalidSamples {
				stats.InvalidSamples = append(stats.InvalidSamples, line)
			}
			continue
		}

		if opts.Kind == KindTLDs && opts.ICANNOnly && !validator.IsPublicSuffix(entry) {
			stats.Filtered++
			continue
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, errors.Wrap(err, "read wordlist")
	}

	list, _ := domain.NewWordList(entries)
	stats.Duplicates = len(entries) - len(list)
	stats.Accepted = len(list)

	if list.IsEmpty() {
		return nil, stats, domain.ErrEmptyWordList
	}
	return list, stats, nil
}

func normalize(line string, kind Kind) (string, bool) {
	entry, err := domain.NormalizeEntry(line)
	if err != nil {
		return "", false
	}
	if kind == KindTLDs {
		return validator.NormalizeTLD(entry)
	}
	return validator.NormalizeLabel(entry)
}

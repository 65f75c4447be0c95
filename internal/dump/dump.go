// Package dump reads legacy catalog export files. Two shapes exist: parent
// dumps (a JSON object of key -> parent record) and flat list dumps (a JSON
// array of records). Files may be compressed; the extension decides.
package dump

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/pierrec/lz4/v4"

	"github.com/bibkit/ilsmigrate/internal/record"
)

// Entry is one key -> record pair of a parent dump.
type Entry struct {
	Key    string
	Record record.Record
}

// Open opens a dump file, transparently decompressing .gz, .br and .lz4.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		reader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		return &wrapped{Reader: reader, file: file}, nil
	case ".br":
		return &wrapped{Reader: brotli.NewReader(file), file: file}, nil
	case ".lz4":
		return &wrapped{Reader: lz4.NewReader(file), file: file}, nil
	default:
		return file, nil
	}
}

type wrapped struct {
	io.Reader
	file *os.File
}

func (w *wrapped) Close() error {
	return w.file.Close()
}

// ReadParents decodes a parent dump. Entries come back in key order so runs
// are deterministic; JSON objects carry no order of their own.
func ReadParents(r io.Reader) ([]Entry, error) {
	raw := map[string]record.Record{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(raw))
	for _, key := range keys {
		entries = append(entries, Entry{Key: key, Record: raw[key]})
	}
	return entries, nil
}

// ReadList decodes a flat list dump in file order.
func ReadList(r io.Reader) ([]record.Record, error) {
	var records []record.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// Include restricts processing to a subset of keys. A nil Include matches
// everything.
type Include map[string]struct{}

// ParseInclude builds an Include from a comma-separated key list; an empty
// string means no restriction.
func ParseInclude(s string) Include {
	if s == "" {
		return nil
	}

	include := Include{}
	for _, key := range strings.Split(s, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			include[key] = struct{}{}
		}
	}
	return include
}

func (i Include) Match(key string) bool {
	if i == nil {
		return true
	}
	_, ok := i[key]
	return ok
}

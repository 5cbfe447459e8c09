package hledger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// The journal editor performs position-addressed surgery on the journal
// file. The engine computes every transaction's source span from the file's
// exact line layout on each read, so an edit that disturbs any line outside
// its target range would silently desynchronize every later span and make a
// future edit corrupt an unrelated transaction. The transform is therefore a
// pure function over a line sequence, tested on its own, with file I/O as a
// thin atomic boundary around it.

// splitLines breaks file content into lines without their "\n" terminators.
// Carriage returns stay inside the line content, so joining the lines back
// with "\n" reproduces the original bytes exactly.
func splitLines(content string) (lines []string, trailingNewline bool) {
	if content == "" {
		return nil, false
	}
	lines = strings.Split(content, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		return lines[:last], true
	}
	return lines, false
}

// spliceLines replaces lines [start, end] (1-indexed, inclusive) with block.
// Every line outside the range is carried over untouched.
func spliceLines(lines []string, start, end int, block []string) ([]string, error) {
	if start < 1 || end < start || end > len(lines) {
		return nil, &FileError{Msg: fmt.Sprintf("line range [%d,%d] is outside the file's %d lines", start, end, len(lines))}
	}
	out := make([]string, 0, len(lines)-(end-start+1)+len(block))
	out = append(out, lines[:start-1]...)
	out = append(out, block...)
	out = append(out, lines[end:]...)
	return out, nil
}

// blockLines normalizes a transaction block to terminator-free lines: CRLF
// becomes LF and a trailing newline is not a line of its own.
func blockLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines, _ := splitLines(text)
	return lines
}

// ReplaceRange replaces lines [startLine, endLine] of the file with text.
// The write goes through a temporary file in the same directory followed by
// a rename, so a crash mid-write never leaves a half-written journal behind.
func ReplaceRange(path string, startLine, endLine int, text string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Path: path, Msg: "cannot read journal", Err: err}
	}
	lines, trailingNewline := splitLines(string(content))

	out, err := spliceLines(lines, startLine, endLine, blockLines(text))
	if err != nil {
		ferr := err.(*FileError)
		ferr.Path = path
		return ferr
	}

	joined := strings.Join(out, "\n")
	if trailingNewline || len(out) == 0 {
		joined += "\n"
	}
	if err := writeFileAtomic(path, []byte(joined)); err != nil {
		return err
	}
	log.Printf("replace-journal-lines file=%q lines=[%d,%d]", path, startLine, endLine)
	return nil
}

// AppendTransaction appends a transaction block at end-of-file, inserting a
// separating blank line unless the file already ends in one.
func AppendTransaction(path string, text string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return &FileError{Path: path, Msg: "cannot read journal", Err: err}
	}
	lines, _ := splitLines(string(content))

	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) != "" {
		lines = append(lines, "")
	}
	lines = append(lines, blockLines(text)...)

	if err := writeFileAtomic(path, []byte(strings.Join(lines, "\n")+"\n")); err != nil {
		return err
	}
	log.Printf("append-journal-block file=%q lines=%d", path, len(blockLines(text)))
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, keeping the original file's permissions when it exists.
func writeFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &FileError{Path: path, Msg: "cannot create temporary file", Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &FileError{Path: path, Msg: "cannot write temporary file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FileError{Path: path, Msg: "cannot close temporary file", Err: err}
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return &FileError{Path: path, Msg: "cannot set permissions", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &FileError{Path: path, Msg: "cannot rename temporary file into place", Err: err}
	}
	return nil
}

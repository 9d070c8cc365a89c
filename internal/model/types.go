// Package model defines the domain types for the mojifix CLI.
//
// A run is a batch of independent per-file repairs. Every file ends in
// exactly one FileStatus, and the batch outcome (Summary) is derived from
// the per-file results. Nothing here is persisted: results exist only for
// the duration of one invocation.
package model

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/mojifix/internal/mojibake"
)

// FileStatus is the final state of one processed file.
//
//	read → reverse → Fixed      (rewritten, or would be in a dry run)
//	               → Clean      (reversal is the identity, nothing to write)
//	               → Unchanged  (not mojibake, file left as-is)
//	     → Failed               (I/O error, non-UTF-8 source, anomaly)
type FileStatus string

const (
	// StatusFixed indicates the file contained mojibake and the repaired
	// text differs from the original.
	StatusFixed FileStatus = "fixed"

	// StatusClean indicates the reversal succeeded but produced the same
	// text, e.g. a pure-ASCII file.
	StatusClean FileStatus = "clean"

	// StatusUnchanged indicates the file does not appear to contain
	// mojibake and was left untouched.
	StatusUnchanged FileStatus = "unchanged"

	// StatusFailed indicates the file could not be processed.
	StatusFailed FileStatus = "failed"
)

// String returns the string representation of FileStatus.
func (s FileStatus) String() string {
	return string(s)
}

// IsValid checks whether the FileStatus value is one of the defined states.
func (s FileStatus) IsValid() bool {
	switch s {
	case StatusFixed, StatusClean, StatusUnchanged, StatusFailed:
		return true
	default:
		return false
	}
}

// Succeeded reports whether the status counts as a success. Only Failed
// does not: a file with no mojibake is a successful no-op.
func (s FileStatus) Succeeded() bool {
	return s.IsValid() && s != StatusFailed
}

// ParseFileStatus converts a string to a FileStatus, ignoring case.
func ParseFileStatus(s string) (FileStatus, error) {
	status := FileStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid file status: %q (valid: fixed, clean, unchanged, failed)", s)
	}
	return status, nil
}

// FileResult describes what happened to one file.
type FileResult struct {
	// Path is the file path as it was discovered.
	Path string `json:"path"`

	// Status is the final state of the file. See FileStatus.
	Status FileStatus `json:"status"`

	// Reason is a short human-readable explanation for Unchanged and
	// Failed results.
	Reason string `json:"reason,omitempty"`

	// Written is true when the repaired text replaced the file on disk.
	// A Fixed result in a dry run has Written == false.
	Written bool `json:"written"`

	// BytesBefore and BytesAfter are the content sizes before and after
	// repair. BytesAfter is zero unless Status is Fixed.
	BytesBefore int64 `json:"bytesBefore"`
	BytesAfter  int64 `json:"bytesAfter,omitempty"`

	// DigestBefore and DigestAfter are hex BLAKE3-256 digests of the
	// original and repaired content.
	DigestBefore string `json:"digestBefore,omitempty"`
	DigestAfter  string `json:"digestAfter,omitempty"`

	// Mapping records how the file's code points were mapped back to bytes.
	Mapping mojibake.Stats `json:"mapping"`

	// Err is the underlying error for Failed results.
	Err error `json:"-"`
}

// Summary aggregates the results of a batch run.
type Summary struct {
	// Total is the number of files processed.
	Total int `json:"total"`

	// Fixed, Clean, Unchanged and Failed count results by status and
	// always add up to Total.
	Fixed     int `json:"fixed"`
	Clean     int `json:"clean"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`

	// BytesRewritten is the total size of repaired content, counted for
	// Fixed results only.
	BytesRewritten int64 `json:"bytesRewritten"`
}

// Succeeded returns the number of files that did not fail.
func (s Summary) Succeeded() int {
	return s.Total - s.Failed
}

// Summarize folds per-file results into a Summary.
func Summarize(results []FileResult) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch r.Status {
		case StatusFixed:
			s.Fixed++
			s.BytesRewritten += r.BytesAfter
		case StatusClean:
			s.Clean++
		case StatusUnchanged:
			s.Unchanged++
		default:
			s.Failed++
		}
	}
	return s
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates every file was processed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates at least one file failed, no files were
	// found, or a check run found files that need repair.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration file or flags are invalid.
	ExitConfigError ExitCode = 2
)

// CLIError is an error that carries a process exit code.
// Commands return it so Execute can exit with the right status.
type CLIError struct {
	// Code is the process exit code to use.
	Code ExitCode

	// Message is the user-facing error message. An empty Message with a nil
	// Err means the command already reported the outcome itself.
	Message string

	// Err is the underlying error, if any. It is shown as detail.
	Err error
}

// Error returns the message, followed by the underlying error if any.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

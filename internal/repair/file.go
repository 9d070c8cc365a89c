package repair

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/moby/sys/atomicwriter"
	"github.com/zeebo/blake3"

	"github.com/shinji-kodama/mojifix/internal/model"
	"github.com/shinji-kodama/mojifix/internal/mojibake"
)

// ErrNotUTF8 is returned for source files that do not decode as UTF-8.
// Such files are outside what the reverser can repair.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// Reasons reported with Unchanged results.
const (
	ReasonNoMojibake   = "no valid UTF-8 after reversal"
	ReasonMixedContent = "mixed content: code points above U+00FF would pass through unchanged"
)

// Options controls how files are repaired.
type Options struct {
	// DryRun classifies files without writing anything.
	DryRun bool

	// Strict downgrades a repair to Unchanged when any code point above
	// U+00FF had to pass through the reverser unchanged.
	Strict bool

	// Jobs is the maximum number of files processed concurrently by Run.
	// Values below 1 are treated as 1.
	Jobs int
}

// File repairs a single file in place.
//
// The file is either replaced in full with the repaired text or left
// byte-for-byte as it was. Errors never escape: they are reported as a
// Failed result so that a batch can continue with the next file.
func File(path string, opts Options) model.FileResult {
	res := model.FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return failed(res, "cannot stat file", err)
	}
	if !info.Mode().IsRegular() {
		return failed(res, "not a regular file", fmt.Errorf("%s: mode %s", path, info.Mode()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failed(res, "cannot read file", err)
	}
	res.BytesBefore = int64(len(data))
	res.DigestBefore = digest(data)

	if !utf8.Valid(data) {
		return failed(res, "cannot decode file", ErrNotUTF8)
	}

	out, err := mojibake.Reverse(string(data))
	if err != nil {
		return failed(res, "reversal failed", err)
	}
	res.Mapping = out.Stats

	if out.Status == mojibake.StatusUnchanged {
		res.Status = model.StatusUnchanged
		res.Reason = ReasonNoMojibake
		return res
	}

	if out.Text == string(data) {
		res.Status = model.StatusClean
		return res
	}

	if opts.Strict && out.Stats.Passthrough > 0 {
		res.Status = model.StatusUnchanged
		res.Reason = ReasonMixedContent
		return res
	}

	repaired := []byte(out.Text)
	res.Status = model.StatusFixed
	res.BytesAfter = int64(len(repaired))
	res.DigestAfter = digest(repaired)

	if opts.DryRun {
		return res
	}

	if err := writeInPlace(path, repaired, info.Mode().Perm()); err != nil {
		res.BytesAfter = 0
		res.DigestAfter = ""
		return failed(res, "cannot write file", err)
	}
	res.Written = true
	return res
}

// writeInPlace atomically replaces the file at path. A symlink is resolved
// first so that the link itself survives and its target is updated.
func writeInPlace(path string, data []byte, perm os.FileMode) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	return atomicwriter.WriteFile(target, data, perm)
}

// digest returns the hex BLAKE3-256 digest of data.
func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// failed marks res as Failed with a reason and underlying error.
func failed(res model.FileResult, reason string, err error) model.FileResult {
	res.Status = model.StatusFailed
	res.Reason = fmt.Sprintf("%s: %v", reason, err)
	res.Err = err
	return res
}

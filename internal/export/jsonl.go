// Package export writes and reads claim datasets in JSON Lines format.
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/greensynth/internal/model"
)

// DefaultPrefix names exported files when no prefix is configured.
const DefaultPrefix = "greenwashing_data"

// maxLineSize bounds a single record when reading an export back.
const maxLineSize = 1 << 20

// DefaultFilename returns "<prefix>_YYYYMMDD_HHMMSS.jsonl" for now.
func DefaultFilename(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s.jsonl", prefix, now.Format("20060102_150405"))
}

// WriteJSONL creates or overwrites path with one JSON object per claim, each
// followed by a newline. It returns the number of records written. The write
// is not atomic; a failure can leave a partial file behind.
func WriteJSONL(path string, claims []model.Claim) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, c := range claims {
		// Encode appends the trailing newline.
		if err := enc.Encode(c); err != nil {
			return n, fmt.Errorf("write record %d: %w", n, err)
		}
		n++
	}

	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("flush %s: %w", path, err)
	}
	return n, nil
}

// LineError reports a line of an export that does not hold a valid claim.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadJSONL loads the claims stored at path. Blank lines are skipped and
// lines that fail validation are returned as LineErrors without stopping the
// read. The error result is reserved for I/O failures.
func ReadJSONL(path string) ([]model.Claim, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var (
		claims  []model.Claim
		invalid []*LineError
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		var c model.Claim
		if err := json.Unmarshal(data, &c); err != nil {
			invalid = append(invalid, &LineError{Line: line, Err: err})
			continue
		}
		claims = append(claims, c)
	}
	if err := scanner.Err(); err != nil {
		return claims, invalid, fmt.Errorf("read %s: %w", path, err)
	}

	return claims, invalid, nil
}

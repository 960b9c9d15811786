package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"speselog/internal/core"
)

const (
	fieldSeparator = ","
	fieldCount     = 3
	maxLineBytes   = 1 << 20

	readBufferBytes = 64 * 1024
	previewBytes    = 64
)

var (
	// ErrFieldCount marks a persisted line without amount, category and description.
	ErrFieldCount = errors.New("expected amount, category and description")
	// ErrLineTooLong marks a persisted line over the size limit.
	ErrLineTooLong = fmt.Errorf("line longer than %d bytes", maxLineBytes)
)

// ParseError describes a persisted line that could not be decoded.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeLine renders an expense as "<amount>,<category>,<description>".
// Fields are not escaped.
func EncodeLine(e core.Expense) string {
	return e.Amount.String() + fieldSeparator + e.Category + fieldSeparator + e.Description
}

// DecodeLine parses one persisted line. Everything after the second
// separator belongs to the description, so descriptions may contain commas.
func DecodeLine(line string) (core.Expense, error) {
	parts := strings.SplitN(line, fieldSeparator, fieldCount)
	if len(parts) != fieldCount {
		return core.Expense{}, ErrFieldCount
	}
	amount, err := core.ParseStoredAmount(parts[0])
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{Amount: amount, Category: parts[1], Description: parts[2]}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// decodeAll reads every line from r. Blank lines are ignored and malformed
// or overlong ones are returned as ParseErrors; only read failures abort.
func decodeAll(r io.Reader) ([]core.Expense, []*ParseError, error) {
	var (
		items   []core.Expense
		skipped []*ParseError
	)
	br := bufio.NewReaderSize(r, readBufferBytes)
	for n := 1; ; n++ {
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if tooLong {
			skipped = append(skipped, &ParseError{Line: n, Text: line, Err: ErrLineTooLong})
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := DecodeLine(line)
		if err != nil {
			skipped = append(skipped, &ParseError{Line: n, Text: line, Err: err})
			continue
		}
		items = append(items, e)
	}
	return items, skipped, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed to its end and only its first previewBytes are
// returned, with the second result set to true.
func readLine(br *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong && len(buf)+len(chunk) > maxLineBytes {
			tooLong = true
		}
		switch {
		case !tooLong:
			buf = append(buf, chunk...)
		case len(buf) > previewBytes:
			buf = buf[:previewBytes]
		default:
			buf = append(buf, chunk[:min(len(chunk), previewBytes-len(buf))]...)
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func encodeAll(w io.Writer, items []core.Expense) error {
	bw := bufio.NewWriter(w)
	for _, e := range items {
		if _, err := bw.WriteString(EncodeLine(e)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

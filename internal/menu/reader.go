package menu

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

type lineResult struct {
	line string
	err  error
}

// lineReader reads lines from an io.Reader on its own goroutine so a
// blocked read does not keep Run from seeing context cancellation.
type lineReader struct {
	lines chan lineResult
	done  chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
	go lr.run(bufio.NewReader(r))
	return lr
}

func (lr *lineReader) run(br *bufio.Reader) {
	defer close(lr.lines)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			// A final line without a terminator is still a line.
			if !lr.send(lineResult{line: trimEOL(line)}) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lr.send(lineResult{err: err})
			}
			return
		}
	}
}

func (lr *lineReader) send(res lineResult) bool {
	select {
	case lr.lines <- res:
		return true
	case <-lr.done:
		return false
	}
}

// next returns the next line, io.EOF at end of input, or ctx.Err().
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

func (lr *lineReader) close() {
	close(lr.done)
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

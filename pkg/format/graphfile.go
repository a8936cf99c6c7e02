package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// TimestampedGraph pairs a parsed Graph with its timestamp, ready for
// tvg.Store.Insert.
type TimestampedGraph struct {
	TS    int64
	Graph *sparse.Graph
}

func isCommentOrBlank(line string) bool {
	trimmed := strings.TrimRight(line, "\r")
	if trimmed == "" {
		return true
	}
	c := trimmed[0]
	return c == '#' || c == ';'
}

// LoadGraphs parses a graph file: tab-separated ts\tsrc\ttgt\tweight
// lines, sorted by ts in the source, grouped by the loader into one Graph
// per distinct consecutive ts. Returns ErrMalformedLine on a line that
// doesn't parse, surfacing it to the caller with no partial graph linked.
func LoadGraphs(r io.Reader, flags sparse.Flags, eps float32) ([]TimestampedGraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var out []TimestampedGraph
	var current *sparse.Graph
	var currentTS int64
	haveCurrent := false
	lineNo := 0

	flush := func() {
		if haveCurrent {
			out = append(out, TimestampedGraph{TS: currentTS, Graph: current})
		}
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if isCommentOrBlank(line) {
			continue
		}
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: line %d: expected 4 tab-separated fields, got %d", ErrMalformedLine, lineNo, len(fields))
		}
		ts, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad ts: %v", ErrMalformedLine, lineNo, err)
		}
		src, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad src: %v", ErrMalformedLine, lineNo, err)
		}
		tgt, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad tgt: %v", ErrMalformedLine, lineNo, err)
		}
		weight, err := strconv.ParseFloat(fields[3], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad weight: %v", ErrMalformedLine, lineNo, err)
		}

		tsSigned := int64(ts)
		if !haveCurrent || tsSigned != currentTS {
			flush()
			current = sparse.NewGraph(flags, eps)
			currentTS = tsSigned
			haveCurrent = true
		}
		current.Set(src, tgt, float32(weight))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	flush()
	return out, nil
}

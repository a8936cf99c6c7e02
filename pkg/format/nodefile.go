package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/tvgraph/pkg/tvg"
)

const headerPrefix = "#index\t"

// LoadNodeAttributes parses a node-attribute file into a
// tvg.NodeAttributes keyed by primaryKey. Column names come from an
// optional "#index\tname1\tname2…" header line if present (a special
// case of the general #/; comment rule); otherwise defaultNames supplies
// them positionally. Every node whose primary-key attributes are fully
// present is linked automatically; nodes missing one are left unlinked
// for the caller to resolve.
func LoadNodeAttributes(r io.Reader, defaultNames, primaryKey []string) (*tvg.NodeAttributes, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	names := defaultNames
	lineNo := 0
	headerSeen := false

	na := tvg.NewNodeAttributes(primaryKey)

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		trimmed := strings.TrimRight(raw, "\r")

		if !headerSeen && strings.HasPrefix(trimmed, headerPrefix) {
			names = strings.Split(trimmed, "\t")[1:]
			headerSeen = true
			continue
		}
		if isCommentOrBlank(trimmed) {
			continue
		}
		headerSeen = true // only the first non-comment line may be a header

		fields := strings.Split(trimmed, "\t")
		if len(fields) < 1 {
			return nil, fmt.Errorf("%w: line %d: empty record", ErrMalformedLine, lineNo)
		}
		idx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad index: %v", ErrMalformedLine, lineNo, err)
		}

		for i, name := range names {
			col := i + 1
			if col >= len(fields) || fields[col] == "" {
				continue
			}
			if err := na.Set(idx, name, fields[col]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
			}
		}

		if _, err := na.Link(idx); err != nil && !errors.Is(err, tvg.ErrMissingPrimaryKey) {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return na, nil
}

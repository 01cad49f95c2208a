package hdu

import (
	"os"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/arloliu/fitsio/section"
)

const historyDateLayout = "02-Jan-2006 15:04:05"

// HistoryRecord describes one processing step in the HISTORY of a file.
type HistoryRecord struct {
	Time      time.Time
	Node      string
	User      string
	Procedure string
	Algorithm string
	Args      string
	RunID     ksuid.KSUID
}

// NewHistoryRecord returns a record stamped with the current UTC time, the host name,
// the user from $USER and a new run id. Node falls back to $HOST when the host name
// cannot be determined.
func NewHistoryRecord(procedure, algorithm, args string) HistoryRecord {
	node, err := os.Hostname()
	if err != nil || node == "" {
		node = os.Getenv("HOST")
	}

	return HistoryRecord{
		Time:      time.Now().UTC(),
		Node:      node,
		User:      os.Getenv("USER"),
		Procedure: procedure,
		Algorithm: algorithm,
		Args:      args,
		RunID:     ksuid.New(),
	}
}

// Lines renders the record as HISTORY lines of at most 72 columns: the date, node
// and user first, then the procedure, algorithm and run id, then the arguments.
// Empty parts are omitted. A group that does not fit one line wraps between parts.
func (r HistoryRecord) Lines() []string {
	first := []string{"date=" + r.Time.UTC().Format(historyDateLayout)}
	if r.Node != "" {
		first = append(first, "node="+r.Node)
	}
	if r.User != "" {
		first = append(first, "user="+r.User)
	}

	var second []string
	if r.Procedure != "" {
		second = append(second, "procedure="+r.Procedure)
	}
	if r.Algorithm != "" {
		second = append(second, "algorithm="+r.Algorithm)
	}
	if !r.RunID.IsNil() {
		second = append(second, "run="+r.RunID.String())
	}

	lines := joinParts(nil, "", first)
	lines = joinParts(lines, "  ", second)
	if r.Args != "" {
		lines = append(lines, clipLine(r.Args))
	}

	return lines
}

// joinParts appends parts separated by two spaces, starting a new line whenever
// the next part would pass column 72. The first line of the group starts with lead.
func joinParts(lines []string, lead string, parts []string) []string {
	if len(parts) == 0 {
		return lines
	}

	line := lead + parts[0]
	for _, part := range parts[1:] {
		if len(line)+2+len(part) > section.TextWidth {
			lines = append(lines, clipLine(line))
			line = part
			continue
		}
		line += "  " + part
	}

	return append(lines, clipLine(line))
}

func clipLine(s string) string {
	if len(s) > section.TextWidth {
		return s[:section.TextWidth]
	}

	return s
}

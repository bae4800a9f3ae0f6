package render

import "strings"

// RunKind says how a text run is styled.
type RunKind int

const (
	// RunPlain is body text.
	RunPlain RunKind = iota
	// RunLead is the bold lead of a "Lead: rest" bullet.
	RunLead
	// RunCitation is a de-emphasised trailing source reference.
	RunCitation
)

// Run is a span of bullet text with one style.
type Run struct {
	Text string
	Kind RunKind
}

// citationTags open a trailing source reference, in priority order.
var citationTags = []string{"[出处：", "[出处:", "[Citation:", "[Source:"}

// leadSeparators end a bold lead, in priority order.
var leadSeparators = []string{"：", ": "}

// SplitRuns splits a bullet into styled runs. A citation tag and everything
// after it becomes a trailing citation run. The rest is split at the first
// lead separator into a bold lead (separator included) and plain remainder.
func SplitRuns(s string) []Run {
	body, citation := s, ""
	for _, tag := range citationTags {
		if i := strings.Index(s, tag); i >= 0 {
			body, citation = s[:i], s[i:]
			break
		}
	}

	var runs []Run
	lead := false
	for _, sep := range leadSeparators {
		if i := strings.Index(body, sep); i >= 0 {
			end := i + len(sep)
			runs = append(runs, Run{Text: body[:end], Kind: RunLead})
			if rest := body[end:]; rest != "" {
				runs = append(runs, Run{Text: rest, Kind: RunPlain})
			}
			lead = true
			break
		}
	}
	if !lead && body != "" {
		runs = append(runs, Run{Text: body, Kind: RunPlain})
	}

	if citation != "" {
		if len(runs) > 0 && !strings.HasSuffix(body, " ") {
			citation = " " + citation
		}
		runs = append(runs, Run{Text: citation, Kind: RunCitation})
	}
	return runs
}

package render

import (
	"reflect"
	"testing"
)

func TestSplitRuns(t *testing.T) {
	tests := []struct {
		input    string
		expected []Run
	}{
		{
			"Revenue: up 12% year on year",
			[]Run{{"Revenue: ", RunLead}, {"up 12% year on year", RunPlain}},
		},
		{
			"营收：同比增长 12% [出处：年报]",
			[]Run{{"营收：", RunLead}, {"同比增长 12% ", RunPlain}, {"[出处：年报]", RunCitation}},
		},
		{
			"Churn fell sharply[Citation: Q3 survey]",
			[]Run{{"Churn fell sharply", RunPlain}, {" [Citation: Q3 survey]", RunCitation}},
		},
		{
			"[Source: internal]",
			[]Run{{"[Source: internal]", RunCitation}},
		},
		{
			"No separator here",
			[]Run{{"No separator here", RunPlain}},
		},
		{
			// The full-width colon wins even when ": " comes first.
			"Note: 重点：增长",
			[]Run{{"Note: 重点：", RunLead}, {"增长", RunPlain}},
		},
		{
			// A colon without a following space is not a separator.
			"Ratio 3:1",
			[]Run{{"Ratio 3:1", RunPlain}},
		},
		{
			"Lead: ",
			[]Run{{"Lead: ", RunLead}},
		},
		{
			// The citation tag is searched before the lead separator.
			"Growth [Citation: a: b]",
			[]Run{{"Growth ", RunPlain}, {"[Citation: a: b]", RunCitation}},
		},
		{
			"",
			nil,
		},
	}

	for _, tt := range tests {
		result := SplitRuns(tt.input)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("SplitRuns(%q) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}

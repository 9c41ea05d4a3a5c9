// SPDX-License-Identifier: MIT

package cohort_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connstat/cohort"
)

func TestParsePredicate(t *testing.T) {
	cases := []struct {
		rule string
		yes  []string
		no   []string
	}{
		{"contains:C", []string{"NENAHC004", "C"}, []string{"NENAHP002"}},
		{"prefix:ctl", []string{"ctl01"}, []string{"pat01", "xctl"}},
		{"suffix:_c", []string{"s01_c"}, []string{"s01_p"}},
		{`regexp:^N.*C\d+$`, []string{"NENAHC004"}, []string{"NENAHP004", "XC1"}},
		{"set: a, b ,", []string{"a", "b"}, []string{"c", ""}},
		{"!contains:P", []string{"NENAHC004"}, []string{"NENAHP002"}},
		{"  CONTAINS:C  ", []string{"C1"}, []string{"P1"}},
	}
	for _, tc := range cases {
		t.Run(tc.rule, func(t *testing.T) {
			p, err := cohort.ParsePredicate(tc.rule)
			require.NoError(t, err)
			for _, id := range tc.yes {
				require.True(t, p(id), id)
			}
			for _, id := range tc.no {
				require.False(t, p(id), id)
			}
		})
	}
}

func TestParsePredicate_Invalid(t *testing.T) {
	for _, rule := range []string{"", "contains", "contains:", "glob:*", "regexp:(", "set:,,"} {
		_, err := cohort.ParsePredicate(rule)
		require.ErrorIs(t, err, cohort.ErrInvalidPredicate, rule)
	}
}

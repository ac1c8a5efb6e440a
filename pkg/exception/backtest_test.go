package exception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yanun0323/errors"
)

func TestSentinelMatching(t *testing.T) {
	testCases := []struct {
		desc   string
		err    error
		target error
		match  bool
	}{
		{"wrapped once", errors.Wrap(ErrNotFound, "bars.csv"), ErrNotFound, true},
		{"wrapped twice", errors.Wrapf(errors.Wrap(ErrInvalidRecord, "line 3"), "file %s", "bars.csv"), ErrInvalidRecord, true},
		{"other sentinel", errors.Wrap(ErrNotFound, "bars.csv"), ErrInvalidRecord, false},
		{"general sentinel", errors.Wrap(ErrNilInstance, "strategy"), ErrNilInstance, true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.match, errors.Is(tc.err, tc.target), "%v", tc.err)
		})
	}
}

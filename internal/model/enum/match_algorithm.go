package enum

import (
	"strings"

	"github.com/yanun0323/errors"
)

// MatchAlgorithm selects how fill attempts are resolved.
type MatchAlgorithm uint8

const (
	_match_algorithm_beg MatchAlgorithm = iota
	// MatchNoTrade never fills. IOC orders are cancelled, GTC orders are left alone.
	MatchNoTrade
	// MatchAlwaysFilled fills the whole remaining quantity at the last price.
	MatchAlwaysFilled
	_match_algorithm_end
)

func (m MatchAlgorithm) IsAvailable() bool {
	return m > _match_algorithm_beg && m < _match_algorithm_end
}

func (m MatchAlgorithm) String() string {
	switch m {
	case MatchNoTrade:
		return "NoTrade"
	case MatchAlwaysFilled:
		return "AlwaysFilled"
	default:
		return "Unknown"
	}
}

// ParseMatchAlgorithm accepts the names returned by String, case-insensitively.
func ParseMatchAlgorithm(s string) (MatchAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "notrade", "no_trade":
		return MatchNoTrade, nil
	case "alwaysfilled", "always_filled":
		return MatchAlwaysFilled, nil
	default:
		return _match_algorithm_beg, errors.Errorf("unknown match algorithm: %q", s)
	}
}

func (m MatchAlgorithm) MarshalText() ([]byte, error) {
	if !m.IsAvailable() {
		return nil, errors.Errorf("unknown match algorithm: %d", m)
	}
	return []byte(m.String()), nil
}

func (m *MatchAlgorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchAlgorithm(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

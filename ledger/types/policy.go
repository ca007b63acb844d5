package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// BoundPolicy configures which bounded checkpoints are accepted.
type BoundPolicy struct {
	// Cooldown is the number of blocks that must elapse before a checkpoint
	// may be committed again at the height of the prior one. A strictly later
	// height is always fresh, so only zero allows several checkpoints within
	// one block.
	Cooldown uint64

	// MaxDelta is the maximal distance between two consecutive values. Nil
	// disables the magnitude bound.
	MaxDelta *uint256.Int

	// Ascending additionally rejects values lower than the previous one.
	Ascending bool
}

// DefaultBoundPolicy requires strictly increasing block heights and no
// magnitude bound.
func DefaultBoundPolicy() BoundPolicy {
	return BoundPolicy{Cooldown: 1}
}

// ParseMaxDelta parses a decimal or 0x prefixed hex bound. The empty string
// returns nil, i.e. no magnitude bound.
func ParseMaxDelta(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, ok := new(big.Int).SetString(s, 0)
	if !ok || b.Sign() < 0 {
		return nil, errors.Errorf("invalid max delta %q", s)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.Errorf("max delta %q exceeds 256 bits", s)
	}
	return v, nil
}

func (p BoundPolicy) String() string {
	maxDelta := "none"
	if p.MaxDelta != nil {
		maxDelta = p.MaxDelta.ToBig().String()
	}
	return fmt.Sprintf("BoundPolicy{cooldown:%v maxDelta:%v ascending:%v}", p.Cooldown, maxDelta, p.Ascending)
}

package shamir

import (
	"fmt"
	"math/big"
)

// Strategy selects how the Lagrange basis terms are divided.
type Strategy int

const (
	// StrategyBasis divides each basis term L_j(0) on its own and requires
	// every division to be exact.
	StrategyBasis Strategy = iota
	// StrategyRational sums the terms y_j*L_j(0) as exact fractions and only
	// requires the final sum to be an integer.
	StrategyRational
)

func (s Strategy) String() string {
	switch s {
	case StrategyBasis:
		return "basis"
	case StrategyRational:
		return "rational"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "basis":
		return StrategyBasis, nil
	case "rational":
		return StrategyRational, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q: must be basis or rational", name)
	}
}

// Reconstruct selects the k shares with the lowest x-coordinates and returns
// the value at zero of the polynomial through them. Each basis term is
// computed with exact integer division.
func Reconstruct(shares []*Share, k int) (*big.Int, error) {
	return ReconstructWith(shares, k, StrategyBasis)
}

// ReconstructWith is Reconstruct with an explicit division strategy.
func ReconstructWith(shares []*Share, k int, strategy Strategy) (*big.Int, error) {
	selected, err := Select(shares, k)
	if err != nil {
		return nil, err
	}
	switch strategy {
	case StrategyBasis:
		return combineBasis(selected)
	case StrategyRational:
		return combineRational(selected)
	default:
		return nil, fmt.Errorf("unknown strategy %s", strategy)
	}
}

// basisAt0 returns the numerator and denominator of L_i(0):
// prod(-x_m) / prod(x_i - x_m) over m != i.
func basisAt0(shares []*Share, i int) (num, den *big.Int) {
	num = big.NewInt(1)
	den = big.NewInt(1)
	xi := shares[i].X
	for m, shareM := range shares {
		if m == i {
			continue
		}
		num.Mul(num, new(big.Int).Neg(shareM.X))
		den.Mul(den, new(big.Int).Sub(xi, shareM.X))
	}
	return num, den
}

func combineBasis(shares []*Share) (*big.Int, error) {
	secret := new(big.Int)
	rem := new(big.Int)
	for i, shareI := range shares {
		num, den := basisAt0(shares, i)
		if den.Sign() == 0 {
			return nil, fmt.Errorf("%w: x=%s", ErrDuplicateX, shareI.X)
		}

		lIAt0, _ := new(big.Int).QuoRem(num, den, rem)
		if rem.Sign() != 0 {
			return nil, fmt.Errorf("%w: basis term for x=%s is %s/%s", ErrInexactDivision, shareI.X, num, den)
		}

		term := new(big.Int).Mul(shareI.Y, lIAt0)
		secret.Add(secret, term)
	}
	return secret, nil
}

func combineRational(shares []*Share) (*big.Int, error) {
	sum := new(big.Rat)
	for i, shareI := range shares {
		num, den := basisAt0(shares, i)
		if den.Sign() == 0 {
			return nil, fmt.Errorf("%w: x=%s", ErrDuplicateX, shareI.X)
		}

		num.Mul(num, shareI.Y)
		sum.Add(sum, new(big.Rat).SetFrac(num, den))
	}
	if !sum.IsInt() {
		return nil, fmt.Errorf("%w: sum is %s", ErrInexactDivision, sum.RatString())
	}
	return new(big.Int).Set(sum.Num()), nil
}

package cli

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/izouxv/goShamir/curve"
	"github.com/izouxv/goShamir/decoder"
	"github.com/izouxv/goShamir/logging"
	"github.com/izouxv/goShamir/shamir"
)

// defaultBoundBits sizes the coefficient bound when neither --bound nor --curve is given.
const defaultBoundBits = 256

// SplitOptions holds the flags of the split command.
type SplitOptions struct {
	Secret string
	Curve  string
	Bound  string
	N      int
	K      int
	Base   int
	Output string
}

// SplitResult is the payload reported when shares are written to a file.
type SplitResult struct {
	Path string `json:"path"`
	N    int    `json:"n"`
	K    int    `json:"k"`
}

func (r SplitResult) String() string {
	return fmt.Sprintf("Wrote %d shares (k=%d) to %s", r.N, r.K, r.Path)
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into a share document",
		Long: `Evaluate a random integer polynomial with the given secret as constant
term at x = 1..n and write the shares as a document solve accepts.
With --curve, the secret is a random scalar of that curve and the
coefficients are drawn below the curve order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync() //nolint:errcheck
			return runSplit(e, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Secret, "secret", "", "Secret to split (decimal, or 0x/0o/0b prefixed)")
	cmd.Flags().StringVar(&opts.Curve, "curve", "", fmt.Sprintf("Draw a random secret for this curve %v", curve.Names()))
	cmd.Flags().StringVar(&opts.Bound, "bound", "", "Exclusive upper bound of the random coefficients")
	cmd.Flags().IntVar(&opts.N, "n", 5, "Number of shares")
	cmd.Flags().IntVar(&opts.K, "k", 3, "Threshold")
	cmd.Flags().IntVar(&opts.Base, "base", 16, "Base of the written values")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the document to this file instead of stdout")

	return cmd
}

func runSplit(e *env, opts *SplitOptions, cmd *cobra.Command) error {
	secret, bound, err := splitParams(opts)
	if err != nil {
		return e.formatter.Fail("invalid split parameters", err)
	}

	shares, err := shamir.Split(secret, opts.N, opts.K, bound)
	if err != nil {
		return e.formatter.Fail("failed to split secret", err)
	}
	doc, err := decoder.FromShares(shares, opts.K, opts.Base)
	if err != nil {
		return e.formatter.Fail("failed to encode shares", err)
	}
	data, err := decoder.Encode(doc)
	if err != nil {
		return e.formatter.Fail("failed to encode shares", err)
	}
	data = append(data, '\n')

	e.log.Info("split secret",
		zap.Int("n", opts.N),
		zap.Int("k", opts.K),
		zap.Int("base", opts.Base),
		logging.Redacted("secret"),
	)

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.Output, data, 0o600); err != nil {
		return e.formatter.Fail("failed to write shares", err)
	}
	e.formatter.VerboseLog("Wrote %d share(s) to %s", opts.N, opts.Output)

	return e.formatter.Success(SplitResult{Path: opts.Output, N: opts.N, K: opts.K})
}

// splitParams resolves the secret and the coefficient bound from the flags.
func splitParams(opts *SplitOptions) (secret, bound *big.Int, err error) {
	switch {
	case opts.Secret != "" && opts.Curve != "":
		return nil, nil, errors.New("--secret and --curve are mutually exclusive")
	case opts.Secret != "":
		var ok bool
		secret, ok = new(big.Int).SetString(opts.Secret, 0)
		if !ok {
			return nil, nil, fmt.Errorf("invalid secret %q", opts.Secret)
		}
	case opts.Curve != "":
		secret, err = curve.RandomScalar(opts.Curve)
		if err != nil {
			return nil, nil, err
		}
		bound, err = curve.Order(opts.Curve)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.New("one of --secret or --curve is required")
	}

	if opts.Bound != "" {
		var ok bool
		bound, ok = new(big.Int).SetString(opts.Bound, 0)
		if !ok || bound.Sign() <= 0 {
			return nil, nil, fmt.Errorf("invalid bound %q", opts.Bound)
		}
	}
	if bound == nil {
		bound = new(big.Int).Lsh(big.NewInt(1), defaultBoundBits)
	}
	return secret, bound, nil
}

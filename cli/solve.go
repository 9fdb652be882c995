package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/izouxv/goShamir/config"
	"github.com/izouxv/goShamir/decoder"
	"github.com/izouxv/goShamir/logging"
	"github.com/izouxv/goShamir/shamir"
	"github.com/izouxv/goShamir/utils"
)

// ShareResult is a share as presented to the user.
type ShareResult struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// SolveResult is the payload of a successful solve.
type SolveResult struct {
	Threshold   int           `json:"k"`
	Strategy    string        `json:"strategy"`
	Shares      []ShareResult `json:"shares"`
	Secret      string        `json:"secret"`
	SecretHex   string        `json:"secret_hex,omitempty"`
	Fingerprint string        `json:"fingerprint,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Reconstruct the secret from a share document",
		Long: `Decode the shares of a JSON or YAML document, select the k shares with
the lowest x-coordinates and print the value at zero of the polynomial
through them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync() //nolint:errcheck
			return runSolve(e, args[0])
		},
	}

	config.AddSolveFlags(cmd.Flags())
	return cmd
}

func runSolve(e *env, path string) error {
	log := e.log.With(zap.String("file", path))

	doc, err := decoder.Load(path)
	if err != nil {
		log.Error("failed to load share document", zap.Error(err))
		return e.formatter.Fail("failed to load shares", err)
	}
	if doc.Keys.N != 0 && doc.Keys.N != len(doc.Entries) {
		log.Warn("share count does not match keys.n",
			zap.Int("n", doc.Keys.N),
			zap.Int("shares", len(doc.Entries)),
		)
	}

	shares, err := doc.Shares()
	if err != nil {
		log.Error("failed to decode shares", zap.Error(err))
		return e.formatter.Fail("failed to decode shares", err)
	}
	e.formatter.VerboseLog("Decoded %d share(s) from %s", len(shares), path)

	k := doc.Keys.K
	selected, err := shamir.Select(shares, k)
	if err != nil {
		log.Error("failed to select shares", zap.Int("k", k), zap.Error(err))
		return e.formatter.Fail("failed to select shares", err)
	}
	e.formatter.VerboseLog("Using the first %d sorted share(s), strategy %s", k, e.cfg.Strategy)

	secret, err := shamir.ReconstructWith(selected, k, e.cfg.Strategy)
	if err != nil {
		log.Error("failed to reconstruct secret", zap.Int("k", k), zap.Error(err))
		return e.formatter.Fail("failed to reconstruct secret", err)
	}
	log.Info("reconstructed secret",
		zap.Int("k", k),
		zap.Stringer("strategy", e.cfg.Strategy),
		logging.Redacted("secret"),
	)

	result := SolveResult{
		Threshold: k,
		Strategy:  e.cfg.Strategy.String(),
		Shares:    make([]ShareResult, len(selected)),
	}
	for i, s := range selected {
		result.Shares[i] = ShareResult{X: s.X.String(), Y: s.Y.String()}
	}
	if e.cfg.Redact {
		result.Secret = logging.Placeholder()
		result.Fingerprint = hexutil.Encode(utils.Fingerprint(secret))
	} else {
		result.Secret = secret.String()
		result.SecretHex = hexutil.EncodeBig(secret)
	}
	return e.formatter.Success(result)
}

// String renders the result as the text output of solve.
func (r SolveResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Threshold (k): %d\n", r.Threshold)
	b.WriteString("Selected shares:\n")
	for _, s := range r.Shares {
		fmt.Fprintf(&b, "  (%s, %s)\n", s.X, s.Y)
	}
	fmt.Fprintf(&b, "Secret: %s", r.Secret)
	if r.Fingerprint != "" {
		fmt.Fprintf(&b, "\nFingerprint: %s", r.Fingerprint)
	}
	return b.String()
}

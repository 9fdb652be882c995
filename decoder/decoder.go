// Package decoder reads share documents and turns their base-encoded values
// into exact-integer shares.
//
// A document maps decimal x-coordinate labels to a base and a value string,
// next to a "keys" object carrying the threshold:
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"}
//	}
//
// Documents are parsed as YAML 1.2, so the same document may be written in
// JSON or YAML.
package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/izouxv/goShamir/shamir"
)

const (
	keysField = "keys"

	MinBase = 2
	MaxBase = 36
)

var (
	// ErrMissingKeys is returned when the document has no "keys" object.
	ErrMissingKeys = errors.New("missing keys object")
	// ErrInvalidThreshold is returned when keys.k is below one.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrInvalidLabel is returned when an x-coordinate label is not a decimal integer.
	ErrInvalidLabel = errors.New("invalid x-coordinate label")
	// ErrInvalidBase is returned for a base outside [2, 36].
	ErrInvalidBase = errors.New("invalid base")
	// ErrInvalidValue is returned when a value has digits outside its base.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNoShares is returned when a document has no share entries.
	ErrNoShares = errors.New("no shares in document")
)

// Keys is the document metadata. N is informational; K is the threshold.
type Keys struct {
	N int `yaml:"n" json:"n"`
	K int `yaml:"k" json:"k"`
}

// RawShare is an undecoded share entry.
type RawShare struct {
	Base  string `yaml:"base" json:"base"`
	Value string `yaml:"value" json:"value"`
}

// Document is a parsed share document.
type Document struct {
	Keys    Keys
	Entries map[string]RawShare
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses a JSON or YAML share document.
func Parse(data []byte) (*Document, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	keysNode, ok := raw[keysField]
	if !ok {
		return nil, ErrMissingKeys
	}
	doc := &Document{Entries: make(map[string]RawShare, len(raw)-1)}
	if err := keysNode.Decode(&doc.Keys); err != nil {
		return nil, fmt.Errorf("failed to parse 'keys' object: %w", err)
	}
	if doc.Keys.K < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidThreshold, doc.Keys.K)
	}

	for label, node := range raw {
		if label == keysField {
			continue
		}
		var entry RawShare
		if err := node.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to parse share %q: %w", label, err)
		}
		doc.Entries[label] = entry
	}
	return doc, nil
}

// Labels returns the entry labels in ascending numeric order. Labels that are
// not integers sort after the numeric ones, lexically.
func (d *Document) Labels() []string {
	labels := make([]string, 0, len(d.Entries))
	for label := range d.Entries {
		labels = append(labels, label)
	}
	slices.SortFunc(labels, func(a, b string) int {
		ai, aok := new(big.Int).SetString(a, 10)
		bi, bok := new(big.Int).SetString(b, 10)
		switch {
		case aok && bok:
			return ai.Cmp(bi)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
	return labels
}

// Shares decodes every entry of the document.
func (d *Document) Shares() ([]*shamir.Share, error) {
	if len(d.Entries) == 0 {
		return nil, ErrNoShares
	}

	shares := make([]*shamir.Share, 0, len(d.Entries))
	for _, label := range d.Labels() {
		share, err := DecodeShare(label, d.Entries[label])
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, nil
}

// DecodeShare converts one labelled entry into a share.
func DecodeShare(label string, entry RawShare) (*shamir.Share, error) {
	x, ok := new(big.Int).SetString(strings.TrimSpace(label), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	base, err := ParseBase(entry.Base)
	if err != nil {
		return nil, fmt.Errorf("share %s: %w", label, err)
	}
	y, err := ParseValue(entry.Value, base)
	if err != nil {
		return nil, fmt.Errorf("share %s: %w", label, err)
	}
	return &shamir.Share{X: x, Y: y}, nil
}

// ParseBase parses a decimal base in [MinBase, MaxBase].
func ParseBase(s string) (int, error) {
	base, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBase, s)
	}
	if base < MinBase || base > MaxBase {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBase, base, MinBase, MaxBase)
	}
	return base, nil
}

// ParseValue converts a value string in the given base into an integer.
// A leading sign is accepted and digits above 9 are case-insensitive.
func ParseValue(value string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBase, base, MinBase, MaxBase)
	}
	y, ok := new(big.Int).SetString(strings.TrimSpace(value), base)
	if !ok {
		return nil, fmt.Errorf("%w: %q in base %d", ErrInvalidValue, value, base)
	}
	return y, nil
}

// FromShares builds a document holding the shares with values written in base.
func FromShares(shares []*shamir.Share, k, base int) (*Document, error) {
	if base < MinBase || base > MaxBase {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBase, base, MinBase, MaxBase)
	}
	doc := &Document{
		Keys:    Keys{N: len(shares), K: k},
		Entries: make(map[string]RawShare, len(shares)),
	}
	for _, s := range shares {
		doc.Entries[s.X.String()] = RawShare{
			Base:  strconv.Itoa(base),
			Value: s.Y.Text(base),
		}
	}
	return doc, nil
}

// MarshalJSON writes "keys" first, then the entries in label order.
func (d *Document) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')

	keys, err := json.Marshal(d.Keys)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + keysField + `":`)
	buf.Write(keys)

	for _, label := range d.Labels() {
		name, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		entry, err := json.Marshal(d.Entries[label])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(entry)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode returns the document as indented JSON.
func Encode(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

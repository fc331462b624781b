package contract

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seralva/gapscope/schema"
)

// LoadBundle reads a frozen analysis bundle from a JSON file produced by the
// collaborator fetch layer. The engine never performs network I/O itself;
// bundles are its only source of raw signals.
func LoadBundle(path string) (*schema.AnalysisBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file %q: %w", path, err)
	}
	return DecodeBundle(data)
}

// DecodeBundle unmarshals and validates bundle bytes.
func DecodeBundle(data []byte) (*schema.AnalysisBundle, error) {
	var bundle schema.AnalysisBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	if err := ValidateBundle(&bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// EncodeBundle marshals a bundle for snapshot storage. Marshaling is stable
// for a fixed bundle, so snapshot round-trips preserve byte identity.
func EncodeBundle(bundle *schema.AnalysisBundle) ([]byte, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}
	return data, nil
}

// ValidateBundle rejects bundles that cannot anchor an analysis run.
// Per-signal insufficiency is not checked here; the analyzers convert those
// into typed skips so one bad signal never rejects the whole bundle.
func ValidateBundle(bundle *schema.AnalysisBundle) error {
	if bundle.Niche == "" {
		return fmt.Errorf("bundle is missing a niche label")
	}
	if bundle.GeneratedAt.IsZero() {
		return fmt.Errorf("bundle is missing generated_at; recency math needs an explicit anchor")
	}
	return nil
}

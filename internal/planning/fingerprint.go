package planning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint hashes the input and config into a stable cache key. Map keys
// are sorted by encoding/json, so equal inputs always hash equally.
func Fingerprint(in Input, cfg Config) (string, error) {
	payload, err := json.Marshal(struct {
		Input  Input  `json:"input"`
		Config Config `json:"config"`
	}{in, cfg.WithDefaults()})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

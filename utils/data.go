package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"gopkg.in/yaml.v3"
)

func PtrString(v string) *string {
	return &v
}

func FromStringPtr(v *string) string {
	if v != nil {
		return *v
	}
	return ""
}

// Fingerprint hashes the YAML form of v. Fields tagged yaml:"-" do not
// contribute.
func Fingerprint(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HashBytes returns the hex sha256 of data, comparable with FileHash.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRecord is the domain prefix for synchronization record identity.
// The version suffix leaves room for a future encoding change.
const DomainRecord = "t0sync/record/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator keeps domain and data unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordID computes the content-addressed identifier of a record given its
// fields. Identical fields always produce the same 64-character hex ID.
func RecordID(fields map[string]any) (string, error) {
	data, err := Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("RecordID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRecord, data), nil
}

// MustRecordID is like RecordID but panics on error.
// Use only in tests or when fields are known to be valid.
func MustRecordID(fields map[string]any) string {
	id, err := RecordID(fields)
	if err != nil {
		panic(err)
	}
	return id
}

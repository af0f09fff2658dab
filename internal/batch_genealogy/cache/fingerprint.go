package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Fingerprint identifies the complete build input: the dataset content and
// the dangling-reference policy. encoding/json sorts map keys, so equal
// datasets always hash alike.
func Fingerprint(ds *domain.Dataset, policy domain.DanglingPolicy) (string, error) {
	b, err := json.Marshal(struct {
		Policy  domain.DanglingPolicy `json:"policy"`
		Dataset *domain.Dataset       `json:"dataset"`
	}{policy, ds})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

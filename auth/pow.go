package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/lais-vegas/vegas/core/log"
)

// checkCancelEvery bounds how long Solve can run past a context cancel.
const checkCancelEvery = 4096

// Solve brute-forces the registration proof-of-work: the lowest
// non-negative nonce n such that hex(sha256(seed + decimal(n))) starts
// with targetPrefix. An empty prefix is satisfied by "0" immediately.
// The search is unbounded, so callers should pass a cancellable context.
func Solve(ctx context.Context, seed string, targetPrefix string) (string, error) {
	start := time.Now()
	for nonce := uint64(0); ; nonce++ {
		if nonce%checkCancelEvery == 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}
		}
		test := seed + strconv.FormatUint(nonce, 10)
		sum := sha256.Sum256([]byte(test))
		digest := hex.EncodeToString(sum[:])
		if strings.HasPrefix(digest, targetPrefix) {
			log.Debugf("pow solved, nonce=%d prefix=%q elapsed=%v", nonce, targetPrefix, time.Since(start))
			return strconv.FormatUint(nonce, 10), nil
		}
		if nonce != 0 && nonce%100000 == 0 {
			log.Debugf("pow search ...%d attempts", nonce)
		}
	}
}

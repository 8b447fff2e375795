package resolver

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// keyPrefix is the shared prefix of the hourly-rotating XOR key. The full
// key is keyPrefix + floor(timestamp/3600).
const keyPrefix = "SECRET_KEY_"

// secondsPerBucket is the key rotation window.
const secondsPerBucket = 3600

// DecryptURL reverses the host's URL obfuscation: base64-decode the
// ciphertext, XOR it byte-for-byte against the time-bucketed key repeated
// cyclically, and decode the result as UTF-8, discarding invalid byte
// sequences. The same (timestamp bucket, ciphertext) pair always yields
// the same URL.
func DecryptURL(timestamp int64, encoded string) (string, error) {
	cipher, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode encrypted url: %w", err)
	}

	key := bucketKey(timestamp)
	plain := xorCycle(cipher, key)

	return strings.ToValidUTF8(string(plain), ""), nil
}

// EncryptURL is the inverse of DecryptURL for the same timestamp bucket.
// The cipher is a symmetric XOR, so this is decryption run forward; it
// exists for round-trip verification.
func EncryptURL(timestamp int64, plainURL string) string {
	key := bucketKey(timestamp)
	return base64.StdEncoding.EncodeToString(xorCycle([]byte(plainURL), key))
}

func bucketKey(timestamp int64) []byte {
	bucket := timestamp / secondsPerBucket
	if timestamp < 0 && timestamp%secondsPerBucket != 0 {
		bucket-- // floor, not truncate
	}
	return []byte(fmt.Sprintf("%s%d", keyPrefix, bucket))
}

func xorCycle(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureTolerance is how old a webhook timestamp may be before the
// delivery is rejected as a possible replay of a captured request.
const SignatureTolerance = 5 * time.Minute

// VerifyWebhookSignature checks the provider signature header against
// the raw request body. The header carries a unix timestamp and one or
// more HMAC-SHA256 signatures over "<timestamp>.<body>":
//
//	t=1712345678,v1=5257a869e7...
//
// Any valid v1 signature within the timestamp tolerance passes.
func VerifyWebhookSignature(payload []byte, header, secret string, now time.Time) error {
	if secret == "" {
		return fmt.Errorf("webhook: signing secret is not configured")
	}
	if header == "" {
		return fmt.Errorf("webhook: missing signature header")
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("webhook: malformed timestamp in signature header")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("webhook: signature header is missing timestamp or signature")
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > SignatureTolerance || age < -SignatureTolerance {
		return fmt.Errorf("webhook: signature timestamp outside tolerance")
	}

	expected := ComputeWebhookSignature(payload, timestamp, secret)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return fmt.Errorf("webhook: no matching signature")
}

// ComputeWebhookSignature computes the hex HMAC-SHA256 signature for a
// payload at a timestamp.
func ComputeWebhookSignature(payload []byte, timestamp int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

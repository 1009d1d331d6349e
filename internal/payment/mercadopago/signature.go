package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the x-signature header Mercado Pago sends with
// webhook notifications. The header carries "ts=<unix>,v1=<hex hmac>" and the
// HMAC-SHA256 manifest is "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
// An empty secret disables verification (local development).
func VerifyWebhookSignature(secret, signatureHeader, requestID, dataID string) bool {
	if secret == "" {
		return true
	}
	var ts, v1 string
	for _, part := range strings.Split(signatureHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ts":
			ts = strings.TrimSpace(value)
		case "v1":
			v1 = strings.TrimSpace(value)
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := "id:" + dataID + ";request-id:" + requestID + ";ts:" + ts + ";"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(v1)))
}

// file: internals/features/finance/payments/service/midtrans_test.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIDRoundTrip(t *testing.T) {
	invoiceID := uuid.New()
	orderID := GenOrderID("INV", invoiceID)

	got, err := ParseOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, invoiceID, got)
}

func TestParseOrderID_Malformed(t *testing.T) {
	for _, bad := range []string{"", "INV", "INV-short", "INV-not-a-uuid-at-all-xxxxxxxxxxxxxxxxxx"} {
		_, err := ParseOrderID(bad)
		assert.Error(t, err, "order_id %q should not parse", bad)
	}
}

func TestVerifySignature(t *testing.T) {
	InitMidtrans("server-key-test", false)

	orderID, statusCode, gross := "INV-abc-1", "200", "600000.00"
	sum := sha512.Sum512([]byte(orderID + statusCode + gross + "server-key-test"))
	valid := hex.EncodeToString(sum[:])

	assert.True(t, VerifySignature(orderID, statusCode, gross, valid))
	assert.False(t, VerifySignature(orderID, statusCode, gross, "deadbeef"))
	assert.False(t, VerifySignature(orderID, "201", gross, valid))
}

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		ts, fraud string
		want      GatewayOutcome
	}{
		{"settlement", "", GatewayOutcomeSettle},
		{"capture", "accept", GatewayOutcomeSettle},
		{"capture", "challenge", GatewayOutcomeIgnore},
		{"capture", "deny", GatewayOutcomeFailed},
		{"pending", "", GatewayOutcomeIgnore},
		{"deny", "", GatewayOutcomeFailed},
		{"cancel", "", GatewayOutcomeFailed},
		{"expire", "", GatewayOutcomeFailed},
		{"failure", "", GatewayOutcomeFailed},
		{"somethingnew", "", GatewayOutcomeIgnore},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapMidtransStatus(tc.ts, tc.fraud),
			"status=%s fraud=%s", tc.ts, tc.fraud)
	}
}

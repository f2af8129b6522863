// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans client
========================================================= */

var SnapClient snap.Client

var midtransServerKey string

// InitMidtrans must be called at bootstrap. useProduction=false keeps
// the Sandbox environment.
func InitMidtrans(serverKey string, useProduction bool) {
	midtransServerKey = serverKey
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

// CheckoutCustomer carries the payer details shown on the Snap page.
type CheckoutCustomer struct {
	Name  string
	Email string
	Phone string
}

// CreateInvoiceCheckout opens a Snap transaction for an invoice's
// remaining amount. The order id embeds the invoice id so the webhook
// can route the settlement back.
func CreateInvoiceCheckout(invoiceID uuid.UUID, invoiceNumber string, amountIDR int64, cust CheckoutCustomer) (token, redirectURL, orderID string, err error) {
	if amountIDR <= 0 {
		return "", "", "", fmt.Errorf("invalid checkout amount")
	}

	orderID = GenOrderID("INV", invoiceID)
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.Name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    invoiceID.String(),
			Name:  "Invoice " + invoiceNumber,
			Price: amountIDR,
			Qty:   1,
		}},
	}

	resp, snapErr := SnapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", "", "", snapErr
	}
	return resp.Token, resp.RedirectURL, orderID, nil
}

// GenOrderID builds "<prefix>-<invoice uuid>-<timestamp>"; the invoice
// id segment is what the webhook parses back out.
func GenOrderID(prefix string, invoiceID uuid.UUID) string {
	return fmt.Sprintf("%s-%s-%s", prefix, invoiceID.String(), time.Now().Format("20060102150405"))
}

// ParseOrderID extracts the invoice id from an order id produced by
// GenOrderID.
func ParseOrderID(orderID string) (uuid.UUID, error) {
	parts := strings.SplitN(orderID, "-", 2)
	if len(parts) != 2 {
		return uuid.Nil, fmt.Errorf("malformed order_id")
	}
	rest := parts[1]
	if len(rest) < 36 {
		return uuid.Nil, fmt.Errorf("malformed order_id")
	}
	return uuid.Parse(rest[:36])
}

// VerifySignature checks the Midtrans notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + midtransServerKey))
	return hex.EncodeToString(sum[:]) == strings.ToLower(strings.TrimSpace(signatureKey))
}

// GatewayOutcome is the internal reading of a gateway status.
type GatewayOutcome int

const (
	GatewayOutcomeIgnore GatewayOutcome = iota // pending/challenge: wait
	GatewayOutcomeSettle                       // record the payment
	GatewayOutcomeFailed                       // deny/cancel/expire: no-op for the invoice
)

// MapMidtransStatus converts a transaction_status/fraud_status pair to
// the internal outcome.
func MapMidtransStatus(transactionStatus, fraudStatus string) GatewayOutcome {
	ts := strings.ToLower(transactionStatus)
	fraud := strings.ToLower(fraudStatus)

	switch ts {
	case "capture":
		if fraud == "accept" {
			return GatewayOutcomeSettle
		}
		if fraud == "challenge" {
			return GatewayOutcomeIgnore
		}
		return GatewayOutcomeFailed

	case "settlement":
		return GatewayOutcomeSettle

	case "pending":
		return GatewayOutcomeIgnore

	case "deny", "cancel", "expire", "failure":
		return GatewayOutcomeFailed
	}

	return GatewayOutcomeIgnore
}

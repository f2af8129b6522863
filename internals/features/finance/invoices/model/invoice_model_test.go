// file: internals/features/finance/invoices/model/invoice_model_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name      string
		current   InvoiceStatus
		total     int64
		paid      int64
		remaining int64
		want      InvoiceStatus
	}{
		{"untouched pending stays pending", InvoiceStatusPending, 1000, 0, 1000, InvoiceStatusPending},
		{"untouched overdue stays overdue", InvoiceStatusOverdue, 1000, 0, 1000, InvoiceStatusOverdue},
		{"partial payment", InvoiceStatusPending, 1000, 400, 600, InvoiceStatusPartial},
		{"partial payment on overdue pulls back to partial", InvoiceStatusOverdue, 1000, 400, 600, InvoiceStatusPartial},
		{"full payment", InvoiceStatusPending, 1000, 1000, 0, InvoiceStatusPaid},
		{"full payment on overdue", InvoiceStatusOverdue, 1000, 1000, 0, InvoiceStatusPaid},
		{"full payment on partial", InvoiceStatusPartial, 1000, 1000, 0, InvoiceStatusPaid},
		{"zero-amount invoice is paid", InvoiceStatusPending, 0, 0, 0, InvoiceStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.current, tc.total, tc.paid, tc.remaining)
			assert.Equal(t, tc.want, got)
		})
	}
}

package order

import (
	"testing"

	"bazar_back_end/internal/models"
)

func TestStatusChangeAllowed(t *testing.T) {
	cases := []struct {
		current, next string
		want          bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderProcessing, models.OrderShipped, true},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderPending, models.OrderCancelled, true},
		// une commande livrée est figée
		{models.OrderDelivered, models.OrderShipped, false},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderDelivered, models.OrderDelivered, false},
		// statut vide refusé
		{models.OrderPending, "", false},
		{models.OrderPending, "   ", false},
	}

	for _, tc := range cases {
		if got := statusChangeAllowed(tc.current, tc.next); got != tc.want {
			t.Errorf("statusChangeAllowed(%q, %q) = %v, attendu %v",
				tc.current, tc.next, got, tc.want)
		}
	}
}

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		orderStatus string
		want        string
		sync        bool
	}{
		{models.OrderDelivered, models.PaymentSuccess, true},
		{models.OrderCancelled, models.PaymentFailed, true},
		{models.OrderPaymentFailed, models.PaymentFailed, true},
		// les statuts intermédiaires ne touchent pas au paiement
		{models.OrderPending, "", false},
		{models.OrderProcessing, "", false},
		{models.OrderShipped, "", false},
	}

	for _, tc := range cases {
		got, sync := paymentStatusFor(tc.orderStatus)
		if got != tc.want || sync != tc.sync {
			t.Errorf("paymentStatusFor(%q) = (%q, %v), attendu (%q, %v)",
				tc.orderStatus, got, sync, tc.want, tc.sync)
		}
	}
}

package utils

import (
	"encoding/json"
	"testing"
)

func TestNotificationChannel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"user:42", "notifications:user:42"},
		{"seller:7", "notifications:seller:7"},
		{"role:ADMIN", "notifications:role:ADMIN"},
	}
	for _, tc := range cases {
		if got := NotificationChannel(tc.in); got != tc.want {
			t.Errorf("NotificationChannel(%q) = %q, attendu %q", tc.in, got, tc.want)
		}
	}
}

func TestNotificationPayload(t *testing.T) {
	var msg map[string]string
	if err := json.Unmarshal(notificationPayload("Nouvelle commande", "Commande #abc"), &msg); err != nil {
		t.Fatalf("payload illisible: %v", err)
	}
	if msg["type"] != "notification" {
		t.Errorf("type = %q, attendu notification", msg["type"])
	}
	if msg["title"] != "Nouvelle commande" || msg["body"] != "Commande #abc" {
		t.Errorf("contenu inattendu: %v", msg)
	}
}

func TestSellerOrderBody(t *testing.T) {
	got := sellerOrderBody("a1b2c3d4", []string{"Clavier mécanique", "Coque"})
	want := "La commande #a1b2c3d4 contient : Clavier mécanique, Coque"
	if got != want {
		t.Errorf("sellerOrderBody = %q, attendu %q", got, want)
	}

	// sans titre résolu, message générique
	got = sellerOrderBody("a1b2c3d4", nil)
	if got != "La commande #a1b2c3d4 contient un ou plusieurs de vos produits" {
		t.Errorf("sellerOrderBody sans titres = %q", got)
	}
}

func TestAdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " admin@bazar.fr, support@bazar.fr , ,")

	got := AdminEmails()
	want := []string{"admin@bazar.fr", "support@bazar.fr"}
	if len(got) != len(want) {
		t.Fatalf("AdminEmails = %v, attendu %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AdminEmails[%d] = %q, attendu %q", i, got[i], want[i])
		}
	}
}

func TestAdminEmailsEmpty(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "")
	if got := AdminEmails(); got != nil {
		t.Errorf("AdminEmails = %v, attendu nil", got)
	}
}

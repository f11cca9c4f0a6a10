package entity

import "testing"

func TestUser_Active(t *testing.T) {
	active := true
	inactive := false

	cases := []struct {
		name string
		flag *bool
		want bool
	}{
		{"nil flag defaults to active", nil, true},
		{"explicitly active", &active, true},
		{"deactivated", &inactive, false},
	}

	for _, tc := range cases {
		u := &User{IsActive: tc.flag}
		if got := u.Active(); got != tc.want {
			t.Fatalf("%s: Active() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInvoice_IsPaid(t *testing.T) {
	if (&Invoice{Status: InvoiceStatusPending}).IsPaid() {
		t.Fatal("pending invoice must not report paid")
	}
	if !(&Invoice{Status: InvoiceStatusPaid}).IsPaid() {
		t.Fatal("paid invoice must report paid")
	}
}

package core

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		r    Receipt
		want string
	}{
		{Receipt{TelegramUsername: "deniz"}, "deniz"},
		{Receipt{FirstName: "Deniz", LastName: "Can"}, "Deniz Can"},
		{Receipt{FirstName: "Deniz"}, "Deniz"},
		{Receipt{LastName: "Can"}, "Can"},
		{Receipt{}, "Anonim"},
	}
	for i, tc := range cases {
		if got := tc.r.DisplayName(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestReceiptValidate(t *testing.T) {
	ok := sampleReceipt()
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid receipt rejected: %v", err)
	}

	bad := sampleReceipt()
	bad.ID = 0
	if err := bad.Validate(); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	neg := sampleReceipt()
	neg.TotalAmount = -1
	if err := neg.Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	list := []Receipt{{ID: 1}, {ID: 2}, {ID: 3}}
	if got := FindByID(list, 2); got != 1 {
		t.Fatalf("FindByID=%d, want 1", got)
	}
	if got := FindByID(list, 9); got != -1 {
		t.Fatalf("FindByID missing=%d, want -1", got)
	}
}

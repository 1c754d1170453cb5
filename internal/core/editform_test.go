package core

import "testing"

func sampleReceipt() Receipt {
	return Receipt{
		ID:               42,
		TelegramUserID:   "998877",
		TelegramUsername: "deniz",
		ReceiptDate:      "2024-03-05",
		ReceiptNo:        "A-0042",
		TotalAmount:      150.00,
		KDV10Amount:      5.00,
		TopKDVAmount:     13.64,
		NetAmount:        136.36,
		CreatedAt:        "2024-03-05T10:00:00Z",
		UpdatedAt:        "2024-03-05T10:00:00Z",
	}
}

func TestEditTopKDVRecomputesNet(t *testing.T) {
	f := NewEditForm(Receipt{TotalAmount: 150.00})
	f.SetTopKDVAmount(13.64)
	if f.NetAmount != 136.36 {
		t.Fatalf("net=%v, want 136.36", f.NetAmount)
	}
}

func TestEditTotalRecomputesNet(t *testing.T) {
	f := NewEditForm(Receipt{TopKDVAmount: 13.64})
	f.SetTotalAmount(200.00)
	if f.NetAmount != 186.36 {
		t.Fatalf("net=%v, want 186.36", f.NetAmount)
	}
}

func TestEditUsesLastCommittedValues(t *testing.T) {
	// The recomputation must combine the just-edited value with the other
	// field's latest value, not the seed values.
	f := NewEditForm(sampleReceipt())
	f.SetTotalAmount(200.00)
	f.SetTopKDVAmount(20.00)
	if f.NetAmount != 180.00 {
		t.Fatalf("net=%v, want 180.00", f.NetAmount)
	}
}

func TestKDV10IsIndependent(t *testing.T) {
	f := NewEditForm(sampleReceipt())
	before := f.NetAmount
	f.SetKDV10Amount(99.99)
	if f.NetAmount != before {
		t.Fatalf("editing kdv_10 changed net from %v to %v", before, f.NetAmount)
	}
	if f.KDV10Amount != 99.99 {
		t.Fatalf("kdv_10=%v", f.KDV10Amount)
	}
}

func TestMergePreservesIdentityAndTimestamps(t *testing.T) {
	orig := sampleReceipt()
	f := NewEditForm(orig)
	f.ReceiptNo = "B-0001"
	f.SetTotalAmount(99.00)

	merged := f.Merge(orig)
	if merged.ID != orig.ID {
		t.Fatalf("merge changed id: %d", merged.ID)
	}
	if merged.TelegramUserID != orig.TelegramUserID || merged.TelegramUsername != orig.TelegramUsername {
		t.Fatal("merge touched submitter identity")
	}
	if merged.CreatedAt != orig.CreatedAt || merged.UpdatedAt != orig.UpdatedAt {
		t.Fatal("merge touched timestamps")
	}
	if merged.ReceiptNo != "B-0001" || merged.TotalAmount != 99.00 {
		t.Fatalf("merge lost edits: %+v", merged)
	}
	// The original must be untouched.
	if orig.ReceiptNo != "A-0042" {
		t.Fatal("merge mutated the original")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.34", 12.34, false},
		{"12,34", 12.34, false},
		{" 150 ", 150, false},
		{"", 0, false},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseAmount(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

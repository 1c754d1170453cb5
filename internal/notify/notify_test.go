package notify

import "testing"

func TestBufferCollectsAndDrains(t *testing.T) {
	b := NewBuffer()
	b.Success("Fiş güncellendi")
	b.Error("Fiş silinemedi")
	b.Info("bilgi")

	msgs := b.Drain()
	if len(msgs) != 3 {
		t.Fatalf("len=%d", len(msgs))
	}
	if msgs[0].Level != LevelSuccess || msgs[0].Text != "Fiş güncellendi" {
		t.Fatalf("msgs[0]=%+v", msgs[0])
	}
	if msgs[1].Level != LevelError {
		t.Fatalf("msgs[1]=%+v", msgs[1])
	}

	if again := b.Drain(); len(again) != 0 {
		t.Fatalf("drain not empty: %+v", again)
	}
}

package fonts

import "testing"

func TestBoldFace(t *testing.T) {
	face, err := BoldFace(24)
	if err != nil {
		t.Fatalf("BoldFace() error: %v", err)
	}
	defer face.Close()

	m := face.Metrics()
	if m.Height <= 0 {
		t.Errorf("Metrics().Height = %v, want > 0", m.Height)
	}
}

func TestBoldCached(t *testing.T) {
	a, err := Bold()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Bold()
	if a != b {
		t.Error("Bold() should return the cached font")
	}
	if len(BoldTTF()) == 0 {
		t.Error("BoldTTF() is empty")
	}
}

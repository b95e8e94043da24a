package codec

import (
	"math/big"
	"testing"
)

func TestBaseNEncoderRoundTrips(t *testing.T) {
	enc := NewBaseNEncoder(16)
	for i := int64(0); i < 500; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

func TestBijectiveBaseNEncoderRoundTrips(t *testing.T) {
	enc := NewBijectiveBaseNEncoder(26)
	for i := int64(1); i < 500; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

func TestWordListEncoderRoundTrips(t *testing.T) {
	enc := NewWordListEncoder([]string{"mercury", "venus", "earth", "mars"})
	for i := int64(0); i < 100; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

func TestByKEncoderRoundTrips(t *testing.T) {
	enc := NewByKEncoder(3)
	for i := int64(0); i < 50; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

func TestWaveEncoderRoundTrips(t *testing.T) {
	enc := WaveEncoder{}
	for i := int64(0); i < 200; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

func TestCollatzEncoderRoundTrips(t *testing.T) {
	enc := CollatzEncoder{}
	for k := int64(1); k < 30; k++ {
		body, err := enc.CountToBody(mustCollatzCount(t, enc, k))
		if err != nil {
			t.Fatalf("CountToBody: %v", err)
		}
		if body != itoa(k) {
			t.Errorf("CountToBody for k=%d produced %q", k, body)
		}
	}
}

func mustCollatzCount(t *testing.T, enc CollatzEncoder, k int64) *big.Int {
	t.Helper()
	n, err := enc.BodyToCount(itoa(k))
	if err != nil {
		t.Fatalf("BodyToCount(%d): %v", k, err)
	}
	return n
}

func itoa(k int64) string {
	return big.NewInt(k).String()
}

func TestGaussianIntegerEncoderRoundTrips(t *testing.T) {
	enc := GaussianIntegerEncoder{}
	for corner := int64(-20); corner <= 20; corner++ {
		body := enc.encodeCorner(big.NewInt(corner))
		n, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q) for corner %d: %v", body, corner, err)
		}
		back, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%s) for corner %d: %v", n, corner, err)
		}
		n2, err := enc.BodyToCount(back)
		if err != nil {
			t.Fatalf("BodyToCount(%q) re-decode: %v", back, err)
		}
		if n2.Cmp(n) != 0 {
			t.Errorf("corner %d: count %s re-encoded to body %q decoding to %s", corner, n, back, n2)
		}
	}
}

func TestPermutationEncoderRoundTrips(t *testing.T) {
	alphabet := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	enc := &PermutationEncoder{Alphabet: alphabet, NoLeadingZeros: true}
	for i := int64(0); i < 500; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

func TestIncreasingSequenceEncoderRoundTrips(t *testing.T) {
	enc := &IncreasingSequenceEncoder{Base: 10}
	for i := int64(0); i < 500; i++ {
		n := big.NewInt(i)
		body, err := enc.CountToBody(n)
		if err != nil {
			t.Fatalf("CountToBody(%d): %v", i, err)
		}
		back, err := enc.BodyToCount(body)
		if err != nil {
			t.Fatalf("BodyToCount(%q): %v", body, err)
		}
		if back.Cmp(n) != 0 {
			t.Errorf("round trip for %d produced body %q -> %s", i, body, back)
		}
	}
}

package version

import (
	"testing"
	"time"
)

func TestEncodeBase36(t *testing.T) {
	tests := []struct {
		n     uint32
		width int
		want  string
	}{
		{0, 3, "000"},
		{1, 3, "001"},
		{35, 3, "00z"},
		{36, 3, "010"},
		{1000, 3, "0rs"},
		{87, 2, "2f"},
		{46655, 3, "zzz"},
		{46656, 3, "000"}, // wraps: only the low-order digits survive
		{46657, 3, "001"},
		{143, 2, "3z"},
	}
	for _, tt := range tests {
		if got := EncodeBase36(tt.n, tt.width); got != tt.want {
			t.Errorf("EncodeBase36(%d, %d) = %q, want %q", tt.n, tt.width, got, tt.want)
		}
	}
}

func TestDecodeBase36(t *testing.T) {
	tests := []struct {
		s    string
		want uint32
		ok   bool
	}{
		{"000", 0, true},
		{"001", 1, true},
		{"00z", 35, true},
		{"010", 36, true},
		{"0rs", 1000, true},
		{"2f", 87, true},
		{"2F", 87, true},
		{"ZZZ", 46655, true},
		{"", 0, true},
		{"1f7-f", 0, false},
		{"12 3", 0, false},
		{"zzzzzzz", 0, false}, // 36^7-1 exceeds 32 bits
	}
	for _, tt := range tests {
		got, ok := DecodeBase36(tt.s)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DecodeBase36(%q) = (%d, %v), want (%d, %v)", tt.s, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 35, 36, 100, 1000, 10000, 46655} {
		encoded := EncodeBase36(n, 3)
		decoded, ok := DecodeBase36(encoded)
		if !ok || decoded != n {
			t.Errorf("roundtrip failed for %d: encoded %q, decoded (%d, %v)", n, encoded, decoded, ok)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		s    string
		days uint32
		slot uint32
		ok   bool
	}{
		{"0rs2f", 1000, 87, true},
		{"00000", 0, 0, true},
		{"zzz3z", 46655, 143, true},
		{"1234", 0, 0, false},
		{"123456", 0, 0, false},
		{"1f7-f", 0, 0, false},
	}
	for _, tt := range tests {
		days, slot, ok := Parse(tt.s)
		if days != tt.days || slot != tt.slot || ok != tt.ok {
			t.Errorf("Parse(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.s, days, slot, ok, tt.days, tt.slot, tt.ok)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"1f72f", "00000", "zzzzz", "1F72F"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	invalid := []string{"1234", "123456", "1f7-f", "", "1f7 f"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "00000"},
		{time.Date(2020, 1, 1, 0, 9, 59, 0, time.UTC), "00000"},
		{time.Date(2020, 1, 1, 0, 10, 0, 0, time.UTC), "00001"},
		{time.Date(2020, 1, 1, 23, 59, 0, 0, time.UTC), "0003z"},
		{time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), "00100"},
		// Day 1000 after the epoch, 14:30 = slot 87.
		{time.Date(2022, 9, 27, 14, 30, 0, 0, time.UTC), "0rs2f"},
	}
	for _, tt := range tests {
		if got := Generate(tt.now); got != tt.want {
			t.Errorf("Generate(%v) = %q, want %q", tt.now, got, tt.want)
		}
	}
}

func TestGenerateSameWindow(t *testing.T) {
	a := Generate(time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC))
	b := Generate(time.Date(2024, 6, 15, 14, 39, 59, 0, time.UTC))
	if a != b {
		t.Errorf("codes within one 10-minute window differ: %q vs %q", a, b)
	}
}

func TestGenerateOrdering(t *testing.T) {
	times := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 0, 10, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC),
		time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
	}
	for i := 1; i < len(times); i++ {
		prev, cur := Generate(times[i-1]), Generate(times[i])
		if !(prev < cur) {
			t.Errorf("Generate(%v) = %q not below Generate(%v) = %q",
				times[i-1], prev, times[i], cur)
		}
		if len(cur) != Width || !IsValid(cur) {
			t.Errorf("Generate(%v) = %q is not a valid code", times[i], cur)
		}
	}
}

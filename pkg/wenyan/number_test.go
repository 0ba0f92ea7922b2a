package wenyan

import (
	"math/big"
	"testing"
)

func TestDecodeIntRun(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"zero", "零", 0},
		{"digit", "五", 5},
		{"ten", "十", 10},
		{"two digit", "二十三", 23},
		{"hundred", "一百二十", 120},
		{"bare hundred", "百", 100},
		{"thousand", "一千零一", 1001},
		{"ten thousand", "一萬", 10000},
		{"mixed", "三萬四千五百六十七", 34567},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeIntRun([]rune(tt.in))
			want := big.NewInt(tt.want)
			if got.Cmp(want) != 0 {
				t.Errorf("decodeIntRun(%q) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestDecodeNumeralNegativeAndFloat(t *testing.T) {
	neg := decodeNumeral([]rune("負十"))
	if neg.isFloat || neg.intVal.Cmp(big.NewInt(-10)) != 0 {
		t.Errorf("負十 = %+v, want -10", neg)
	}

	dot := decodeNumeral([]rune("三·一四"))
	if !dot.isFloat {
		t.Fatalf("三·一四 should decode as a float")
	}
	if diff := dot.floatVal - 3.14; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("三·一四 = %v, want 3.14", dot.floatVal)
	}
}

func TestApplyFractionGroup(t *testing.T) {
	base := decodedNumber{isFloat: false, intVal: big.NewInt(1)}
	got := applyFractionGroup(base, big.NewInt(5), '分')
	if !got.isFloat {
		t.Fatalf("applying a fraction group must promote to float")
	}
	want := 1.5
	if diff := got.floatVal - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("1又5分 = %v, want %v", got.floatVal, want)
	}
}

func TestMultiplierExponentsDouble(t *testing.T) {
	// 萬進: from 萬 on, each further multiplier doubles the previous
	// exponent rather than advancing by a fixed power of four.
	wantExp := map[rune]uint{
		'萬': 4, '億': 8, '兆': 16, '京': 32, '垓': 64,
		'秭': 128, '穣': 256, '溝': 512, '澗': 1024,
		'正': 2048, '載': 4096, '極': 8192,
	}
	for r, exp := range wantExp {
		if got := multiplierExp[r]; got != exp {
			t.Errorf("multiplierExp[%q] = %d, want %d", r, got, exp)
		}
	}
}

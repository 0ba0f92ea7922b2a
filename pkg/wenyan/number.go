package wenyan

import "math/big"

// This file decodes the compound Chinese numeral system described in
// spec section 4.1. It is grounded on the teacher's types_builtin.go Number
// type in spirit only: that code modeled a fixed-point decimal64 value with
// a fraction-digit count fixed per YANG type, which has no counterpart
// here. Wenyan numerals are digit-and-multiplier runs of unbounded
// magnitude, so the decoder below is new, but it keeps the teacher's habit
// of a small pure decode function plus a table-driven unit/exponent map
// (mirrored by types_builtin.go's pow10 table).

// digitValue maps a single numeral digit rune to its value. 負 and ·
// are handled separately by the caller; they are not plain digits.
var digitValue = map[rune]int64{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

// multiplierExp gives the power-of-ten exponent for each multiplier
// character. Per spec section 4.1, 十/百/千 increase by one decimal order
// each; from 萬 on, the system is 萬進 with the exponent doubling at each
// further step (萬=10^4, 億=10^8, 兆=10^16, ...).
var multiplierExp = map[rune]uint{
	'十': 1, '百': 2, '千': 3,
	'萬': 4, '億': 8, '兆': 16, '京': 32, '垓': 64,
	'秭': 128, '穣': 256, '溝': 512, '澗': 1024,
	'正': 2048, '載': 4096, '極': 8192,
}

// fractionExp gives the negative power-of-ten place value named by each
// fractional unit used in the 又 <digit> <unit> float form.
var fractionExp = map[rune]int{
	'分': 1, '釐': 2, '毫': 3, '絲': 4, '忽': 5, '微': 6,
	'纖': 7, '沙': 8, '塵': 9, '埃': 10, '渺': 11, '漠': 12,
}

// numeralRune reports whether r can appear inside a maximal INT_NUM run.
func numeralRune(r rune) bool {
	if r == '負' || r == '·' {
		return true
	}
	if _, ok := digitValue[r]; ok {
		return true
	}
	_, ok := multiplierExp[r]
	return ok
}

func fractionUnitRune(r rune) bool {
	_, ok := fractionExp[r]
	return ok
}

var ten = big.NewInt(10)

func pow10Big(exp uint) *big.Int {
	return new(big.Int).Exp(ten, new(big.Int).SetUint64(uint64(exp)), nil)
}

// decodeIntRun decodes a run of digit and multiplier runes (no 負, no ·)
// using the standard additive Chinese numeral grammar: a digit multiplies
// the following multiplier; a bare multiplier with no preceding digit
// stands for 1×multiplier; multipliers combine additively; a trailing
// digit with no following multiplier is the units place.
func decodeIntRun(runes []rune) *big.Int {
	result := new(big.Int)
	hasDigit := false
	var digit int64
	for _, r := range runes {
		if exp, ok := multiplierExp[r]; ok {
			coeff := int64(1)
			if hasDigit {
				coeff = digit
			}
			term := new(big.Int).Mul(big.NewInt(coeff), pow10Big(exp))
			result.Add(result, term)
			hasDigit = false
			digit = 0
			continue
		}
		if v, ok := digitValue[r]; ok {
			digit = v
			hasDigit = true
		}
	}
	if hasDigit {
		result.Add(result, big.NewInt(digit))
	}
	return result
}

// decodedNumber is the result of decoding one maximal numeral run (not
// counting any trailing 又-groups, which the lexer folds in separately).
type decodedNumber struct {
	isFloat bool
	intVal  *big.Int // valid when !isFloat
	floatVal float64 // valid when isFloat
}

// decodeNumeral decodes a maximal run of INT_NUM_KEYWORDS characters,
// handling an optional leading 負 and an optional · decimal point whose
// trailing digits are plain decimal places (not multiplier weighted).
func decodeNumeral(runes []rune) decodedNumber {
	negative := false
	if len(runes) > 0 && runes[0] == '負' {
		negative = true
		runes = runes[1:]
	}

	dot := -1
	for i, r := range runes {
		if r == '·' {
			dot = i
			break
		}
	}

	if dot < 0 {
		v := decodeIntRun(runes)
		if negative {
			v.Neg(v)
		}
		return decodedNumber{isFloat: false, intVal: v}
	}

	head := decodeIntRun(runes[:dot])
	frac := runes[dot+1:]
	f, _ := new(big.Float).SetInt(head).Float64()
	place := 0.1
	for _, r := range frac {
		if v, ok := digitValue[r]; ok {
			f += float64(v) * place
			place /= 10
		}
	}
	if negative {
		f = -f
	}
	return decodedNumber{isFloat: true, floatVal: f}
}

// applyFractionGroup folds one 又 <digit-run> <unit> group into a base
// value, promoting it to float if it was not already.
func applyFractionGroup(base decodedNumber, coeff *big.Int, unit rune) decodedNumber {
	exp, ok := fractionExp[unit]
	if !ok {
		return base
	}
	place := 1.0
	for i := 0; i < exp; i++ {
		place /= 10
	}
	c, _ := new(big.Float).SetInt(coeff).Float64()
	add := c * place

	if base.isFloat {
		base.floatVal += add
		return base
	}
	f, _ := new(big.Float).SetInt(base.intVal).Float64()
	return decodedNumber{isFloat: true, floatVal: f + add}
}

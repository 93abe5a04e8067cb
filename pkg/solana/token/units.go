package token

import (
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
)

// ScaledFactorShift is the number of decimal places used by scaled factors,
// such as vote weight multipliers stored as integers on chain.
const ScaledFactorShift = 9

// MaxDecimals is the largest decimal shift a LegacyDec holds exactly. Mints
// may declare up to 255 decimals, so every shift is checked against it.
const MaxDecimals = sdkmath.LegacyPrecision

var ErrUnsupportedDecimals = errors.Errorf("decimals above %d are not supported", MaxDecimals)

// CheckDecimals returns ErrUnsupportedDecimals when amounts with decimals
// places can't be shifted without losing precision.
func CheckDecimals(decimals uint8) error {
	if int(decimals) > MaxDecimals {
		return errors.Wrapf(ErrUnsupportedDecimals, "got %d", decimals)
	}
	return nil
}

// ShiftDecimals converts an on-chain integer amount into whole token units by
// moving the decimal point left by decimals places.
func ShiftDecimals(amount sdkmath.Int, decimals uint8) (sdkmath.LegacyDec, error) {
	if err := CheckDecimals(decimals); err != nil {
		return sdkmath.LegacyDec{}, err
	}
	return sdkmath.LegacyNewDecFromInt(amount).Quo(sdkmath.LegacyNewDecFromInt(pow10(decimals))), nil
}

// UnshiftDecimals converts whole token units back into an on-chain integer
// amount. Precision beyond decimals places is truncated.
func UnshiftDecimals(value sdkmath.LegacyDec, decimals uint8) (sdkmath.Int, error) {
	if err := CheckDecimals(decimals); err != nil {
		return sdkmath.Int{}, err
	}
	return value.MulInt(pow10(decimals)).TruncateInt(), nil
}

// UnshiftDecimalsToUint64 is UnshiftDecimals for values that must fit a u64
// account field.
func UnshiftDecimalsToUint64(value sdkmath.LegacyDec, decimals uint8) (uint64, error) {
	if value.IsNegative() {
		return 0, errors.Errorf("negative amount %s", value)
	}

	amount, err := UnshiftDecimals(value, decimals)
	if err != nil {
		return 0, err
	}
	if !amount.IsUint64() {
		return 0, errors.Errorf("amount %s overflows u64", amount)
	}
	return amount.Uint64(), nil
}

// GetScaledFactor converts a factor such as 1.5 into its integer scaled form.
func GetScaledFactor(amount float64) (sdkmath.Int, error) {
	value, err := sdkmath.LegacyNewDecFromStr(strconv.FormatFloat(amount, 'f', -1, 64))
	if err != nil {
		return sdkmath.Int{}, errors.Wrapf(err, "invalid factor %v", amount)
	}

	return UnshiftDecimals(value, ScaledFactorShift)
}

// GetInverseScaledFactor converts a scaled integer factor back to a float.
func GetInverseScaledFactor(amount sdkmath.Int) float64 {
	shifted, _ := ShiftDecimals(amount, ScaledFactorShift)
	return shifted.MustFloat64()
}

// GetMintDecimalAmount converts a natural amount of mint into whole units.
func GetMintDecimalAmount(mint *Mint, amount uint64) (sdkmath.LegacyDec, error) {
	return ShiftDecimals(sdkmath.NewIntFromUint64(amount), mint.Decimals)
}

// FormatMintNaturalAmountAsDecimal renders a natural amount of mint in whole
// units with thousands separators and without trailing zeros. The shift is
// done on the digits, so any number of decimals is exact.
func FormatMintNaturalAmountAsDecimal(mint *Mint, amount uint64) string {
	digits := strconv.FormatUint(amount, 10)

	decimals := int(mint.Decimals)
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole, frac := digits[:len(digits)-decimals], digits[len(digits)-decimals:]
	return groupDigits("", whole, strings.TrimRight(frac, "0"))
}

// FormatDecimal renders value with thousands separators. A negative places
// keeps every significant fractional digit, otherwise value is rounded to
// places fractional digits.
func FormatDecimal(value sdkmath.LegacyDec, places int) string {
	if places >= 0 {
		if places > sdkmath.LegacyPrecision {
			places = sdkmath.LegacyPrecision
		}
		scale := pow10(uint8(places))
		value = sdkmath.LegacyNewDecFromIntWithPrec(value.MulInt(scale).RoundInt(), int64(places))
	}

	raw := value.String()

	var sign string
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}

	whole, frac, _ := strings.Cut(raw, ".")
	if places >= 0 {
		frac = frac[:places]
	} else {
		frac = strings.TrimRight(frac, "0")
	}

	return groupDigits(sign, whole, frac)
}

// groupDigits joins the parts of a decimal, with commas between thousands of
// the whole part.
func groupDigits(sign, whole, frac string) string {
	var sb strings.Builder
	sb.WriteString(sign)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}
	if len(frac) > 0 {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

func pow10(decimals uint8) sdkmath.Int {
	return sdkmath.NewIntWithDecimal(1, int(decimals))
}

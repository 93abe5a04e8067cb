package token

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftDecimals_RoundTrip(t *testing.T) {
	for _, decimals := range []uint8{0, 6, 9, MaxDecimals} {
		for _, natural := range []uint64{0, 1, 7, 1_000_000, 123_456_789_012, 18_446_744_073_709_551_615} {
			amount := sdkmath.NewIntFromUint64(natural)

			shifted, err := ShiftDecimals(amount, decimals)
			require.NoError(t, err)
			unshifted, err := UnshiftDecimals(shifted, decimals)
			require.NoError(t, err)
			assert.True(t, amount.Equal(unshifted), "decimals=%d amount=%d", decimals, natural)

			back, err := UnshiftDecimalsToUint64(shifted, decimals)
			require.NoError(t, err)
			assert.Equal(t, natural, back)
		}
	}
}

func TestShiftDecimals(t *testing.T) {
	shifted, err := ShiftDecimals(sdkmath.NewInt(1_500_000), 6)
	require.NoError(t, err)
	assert.Equal(t, "1.500000000000000000", shifted.String())

	shifted, err = ShiftDecimals(sdkmath.NewInt(5), 0)
	require.NoError(t, err)
	assert.True(t, sdkmath.LegacyNewDec(5).Equal(shifted))

	shifted, err = ShiftDecimals(sdkmath.NewInt(1), MaxDecimals)
	require.NoError(t, err)
	assert.Equal(t, "0.000000000000000001", shifted.String())
}

func TestUnshiftDecimals_Truncates(t *testing.T) {
	value := sdkmath.LegacyMustNewDecFromStr("1.23456789")
	unshifted, err := UnshiftDecimals(value, 6)
	require.NoError(t, err)
	assert.Equal(t, "1234567", unshifted.String())
}

func TestUnshiftDecimalsToUint64_Errors(t *testing.T) {
	_, err := UnshiftDecimalsToUint64(sdkmath.LegacyNewDec(-1), 0)
	assert.Error(t, err)

	_, err = UnshiftDecimalsToUint64(sdkmath.LegacyMustNewDecFromStr("18446744073709551616"), 0)
	assert.Error(t, err)
}

func TestDecimals_AboveMaxRejected(t *testing.T) {
	for _, decimals := range []uint8{MaxDecimals + 1, 24, 100, 255} {
		_, err := ShiftDecimals(sdkmath.NewInt(1), decimals)
		assert.ErrorIs(t, err, ErrUnsupportedDecimals, "decimals=%d", decimals)

		_, err = UnshiftDecimals(sdkmath.LegacyOneDec(), decimals)
		assert.ErrorIs(t, err, ErrUnsupportedDecimals, "decimals=%d", decimals)

		_, err = UnshiftDecimalsToUint64(sdkmath.LegacyOneDec(), decimals)
		assert.ErrorIs(t, err, ErrUnsupportedDecimals, "decimals=%d", decimals)

		_, err = GetMintDecimalAmount(&Mint{Decimals: decimals}, 1)
		assert.ErrorIs(t, err, ErrUnsupportedDecimals, "decimals=%d", decimals)
	}

	assert.NoError(t, CheckDecimals(MaxDecimals))
}

func TestScaledFactor_RoundTrip(t *testing.T) {
	for _, factor := range []float64{0, 1, 1.5, 0.123456789, 2.000000001, 1000} {
		scaled, err := GetScaledFactor(factor)
		require.NoError(t, err)
		assert.Equal(t, factor, GetInverseScaledFactor(scaled))
	}

	scaled, err := GetScaledFactor(1.5)
	require.NoError(t, err)
	assert.Equal(t, "1500000000", scaled.String())
}

func TestFormatMintNaturalAmountAsDecimal(t *testing.T) {
	mint := &Mint{Decimals: 6}

	assert.Equal(t, "0", FormatMintNaturalAmountAsDecimal(mint, 0))
	assert.Equal(t, "1.5", FormatMintNaturalAmountAsDecimal(mint, 1_500_000))
	assert.Equal(t, "1,234,567.000001", FormatMintNaturalAmountAsDecimal(mint, 1_234_567_000_001))
	assert.Equal(t, "999", FormatMintNaturalAmountAsDecimal(&Mint{}, 999))
	assert.Equal(t, "1,000", FormatMintNaturalAmountAsDecimal(&Mint{}, 1000))
	assert.Equal(t, "0.0000000000000000000001", FormatMintNaturalAmountAsDecimal(&Mint{Decimals: 22}, 1))
	assert.Equal(t, "0", FormatMintNaturalAmountAsDecimal(&Mint{Decimals: 255}, 0))
}

func TestFormatDecimal_Places(t *testing.T) {
	value := sdkmath.LegacyMustNewDecFromStr("-12345.6789")
	assert.Equal(t, "-12,345.68", FormatDecimal(value, 2))
	assert.Equal(t, "-12,346", FormatDecimal(value, 0))
	assert.Equal(t, "-12,345.6789", FormatDecimal(value, -1))
}

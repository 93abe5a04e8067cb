package solana

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	require.NoError(t, err)
	return decoded
}

func TestCreateProgramAddress_KnownValues(t *testing.T) {
	// Vectors from the Solana SDK, typo included.
	program := mustDecode(t, "BPFLoader1111111111111111111111111111111111")
	seedKey := mustDecode(t, "SeedPubey1111111111111111111111111111111111")

	for _, tc := range []struct {
		seeds    [][]byte
		expected string
	}{
		{[][]byte{{}, {1}}, "3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT"},
		{[][]byte{[]byte("☉")}, "7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7"},
		{[][]byte{[]byte("Talking"), []byte("Squirrels")}, "HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds"},
		{[][]byte{seedKey}, "GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K"},
	} {
		address, err := CreateProgramAddress(program, tc.seeds...)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(address))
		assert.False(t, IsOnCurve(address))
	}
}

func TestCreateProgramAddress_SeedLimits(t *testing.T) {
	program := mustDecode(t, "BPFLoader1111111111111111111111111111111111")

	_, err := CreateProgramAddress(program, make([]byte, MaxSeedLength))
	assert.NoError(t, err)

	_, err = CreateProgramAddress(program, []byte("short"), make([]byte, MaxSeedLength+1))
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)

	_, err = CreateProgramAddress(program, make([][]byte, MaxSeeds+1)...)
	assert.ErrorIs(t, err, ErrTooManySeeds)

	_, _, err = FindProgramAddressAndBump(program, make([][]byte, MaxSeeds)...)
	assert.ErrorIs(t, err, ErrTooManySeeds)
}

func TestIsOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	assert.True(t, IsOnCurve(pub))

	assert.False(t, IsOnCurve(pub[:31]))
}

func TestFindProgramAddress_KnownValues(t *testing.T) {
	for _, tc := range []struct {
		program  string
		expected string
	}{
		{"4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM", "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd"},
		{"8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh", "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S"},
		{"CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3", "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv"},
		{"GcdayuLaLyrdmUu324nahyv33G5poQdLUEZ1nEytDeP", "2mN5Nfq9v1EwTV9FPTHPESZ3XiZce9wi5PQoULFuxvev"},
		{"21Z7hRtGQYRi8NocdZzhRuBRt9UZbFXbm1dKYvevp4vB", "9PPbRbNP3rqwzk16r7NDBzk1YDfo9EpWDWSqCYLn5eaF"},
		{"2M59vuWgsiuHAqQVB6KvuXuaBCJR8138gMAm4uCuR6Du", "E5dLtHAM353EPnHyuZ32sKREn26VW4Y8bzb2KQJTBHQh"},
	} {
		program := mustDecode(t, tc.program)

		address, bump, err := FindProgramAddressAndBump(program, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(address))

		recreated, err := CreateProgramAddress(program, []byte("Lil'"), []byte("Bits"), []byte{bump})
		require.NoError(t, err)
		assert.Equal(t, address, recreated)
	}
}

func TestFindProgramAddress_RandomPrograms(t *testing.T) {
	for i := 0; i < 200; i++ {
		program, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		seeds := [][]byte{[]byte("native-treasury"), program}
		address, err := FindProgramAddress(program, seeds...)
		require.NoError(t, err)
		assert.Len(t, address, ed25519.PublicKeySize)

		// Derivation does not modify the caller's seeds.
		assert.Len(t, seeds, 2)
	}
}

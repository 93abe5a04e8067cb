package governance

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
)

const (
	// SupplyFractionDecimals is the precision of supply fractions.
	SupplyFractionDecimals = 10

	// FullSupplyFraction is 100% of the mint supply.
	FullSupplyFraction uint64 = 10_000_000_000
)

type MintMaxVoterWeightSourceType uint8

const (
	MintMaxVoterWeightSourceSupplyFraction MintMaxVoterWeightSourceType = iota
	MintMaxVoterWeightSourceAbsolute
)

// MintMaxVoterWeightSource determines the max vote weight of a mint, either
// as a fraction of its supply or as an absolute amount.
type MintMaxVoterWeightSource struct {
	Type  MintMaxVoterWeightSourceType
	Value uint64
}

const mintMaxVoterWeightSourceSize = 1 + 8

func FullSupplyMaxVoterWeightSource() MintMaxVoterWeightSource {
	return MintMaxVoterWeightSource{Type: MintMaxVoterWeightSourceSupplyFraction, Value: FullSupplyFraction}
}

// SupplyFraction returns the fraction as a decimal, 1 being the full supply.
func (m MintMaxVoterWeightSource) SupplyFraction() sdkmath.LegacyDec {
	return sdkmath.LegacyNewDecFromIntWithPrec(sdkmath.NewIntFromUint64(m.Value), SupplyFractionDecimals)
}

func (m MintMaxVoterWeightSource) IsFullSupply() bool {
	return m.Type == MintMaxVoterWeightSourceSupplyFraction && m.Value == FullSupplyFraction
}

func (m MintMaxVoterWeightSource) String() string {
	if m.Type == MintMaxVoterWeightSourceAbsolute {
		return fmt.Sprintf("Absolute(%d)", m.Value)
	}
	return fmt.Sprintf("SupplyFraction(%s)", m.SupplyFraction())
}

// ParseMintSupplyFraction converts a decimal fraction such as "0.5" into a
// supply fraction source. An empty string means the full supply.
func ParseMintSupplyFraction(fraction string) (MintMaxVoterWeightSource, error) {
	if fraction == "" {
		return FullSupplyMaxVoterWeightSource(), nil
	}

	value, err := sdkmath.LegacyNewDecFromStr(fraction)
	if err != nil {
		return MintMaxVoterWeightSource{}, errors.Wrapf(err, "invalid supply fraction %q", fraction)
	}
	if value.IsNegative() {
		return MintMaxVoterWeightSource{}, errors.Errorf("negative supply fraction %q", fraction)
	}

	scaled := value.MulInt(sdkmath.NewIntWithDecimal(1, SupplyFractionDecimals)).TruncateInt()
	if !scaled.IsUint64() {
		return MintMaxVoterWeightSource{}, errors.Errorf("supply fraction %q overflows", fraction)
	}

	return MintMaxVoterWeightSource{
		Type:  MintMaxVoterWeightSourceSupplyFraction,
		Value: scaled.Uint64(),
	}, nil
}

func getMintMaxVoterWeightSource(src []byte, dst *MintMaxVoterWeightSource, offset *int) error {
	if err := checkRemaining(src, *offset, mintMaxVoterWeightSourceSize); err != nil {
		return err
	}

	var kind uint8
	getUint8(src, &kind, offset)
	if kind > uint8(MintMaxVoterWeightSourceAbsolute) {
		return errors.Wrapf(ErrInvalidAccountData, "invalid max voter weight source %d", kind)
	}
	dst.Type = MintMaxVoterWeightSourceType(kind)
	getUint64(src, &dst.Value, offset)
	return nil
}

func putMintMaxVoterWeightSource(dst []byte, v MintMaxVoterWeightSource, offset *int) {
	putUint8(dst, uint8(v.Type), offset)
	putUint64(dst, v.Value, offset)
}

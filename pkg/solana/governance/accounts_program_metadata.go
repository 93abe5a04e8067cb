package governance

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const programMetadataReservedSize = 64

// ProgramMetadataAccount is written by a governance deployment to advertise
// its version.
type ProgramMetadataAccount struct {
	UpdatedAt uint64
	Version   string
}

func (obj *ProgramMetadataAccount) Marshal() []byte {
	data := make([]byte, 1+8+stringSize(obj.Version)+programMetadataReservedSize)

	var offset int
	putUint8(data, uint8(AccountTypeProgramMetadata), &offset)
	putUint64(data, obj.UpdatedAt, &offset)
	putString(data, obj.Version, &offset)

	return data
}

func (obj *ProgramMetadataAccount) Unmarshal(data []byte) error {
	if len(data) < 1+8 {
		return ErrInvalidAccountData
	}

	var offset int
	var accountType uint8
	getUint8(data, &accountType, &offset)
	if AccountType(accountType) != AccountTypeProgramMetadata {
		return errors.Wrapf(ErrInvalidAccountType, "expected program metadata, got %d", accountType)
	}

	getUint64(data, &obj.UpdatedAt, &offset)
	return getString(data, &obj.Version, &offset)
}

// MajorVersion parses the leading component of a semantic version such as
// "3.1.0".
func (obj *ProgramMetadataAccount) MajorVersion() (uint8, error) {
	major, _, _ := strings.Cut(obj.Version, ".")
	v, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid program version %q", obj.Version)
	}
	return uint8(v), nil
}

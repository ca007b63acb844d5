package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/thetatoken/checkpoint/common"
)

// ValueLength is the width of a checkpoint value in bytes.
const ValueLength = 32

// Value is an opaque 32-byte checkpoint value. It is only interpreted as a
// number, big-endian and unsigned, when the bound policy compares values.
type Value [ValueLength]byte

// BytesToValue left-pads b to 32 bytes. If b is longer it is cropped from the
// left, mirroring common.BytesToHash.
func BytesToValue(b []byte) Value {
	var v Value
	if len(b) > ValueLength {
		b = b[len(b)-ValueLength:]
	}
	copy(v[ValueLength-len(b):], b)
	return v
}

// ParseValue decodes a hex string, with or without 0x prefix, and left-pads
// it with zeros to 32 bytes. Inputs longer than 32 bytes are rejected.
func ParseValue(s string) (Value, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Value{}, errors.Wrapf(err, "invalid hex value %q", s)
	}
	if len(b) > ValueLength {
		return Value{}, fmt.Errorf("value is %v bytes long, at most %v bytes allowed", len(b), ValueLength)
	}
	return BytesToValue(b), nil
}

// Bytes returns a copy of the raw bytes.
func (v Value) Bytes() []byte {
	return common.CopyBytes(v[:])
}

// Hex returns the 0x prefixed hex encoding of the full 32 bytes.
func (v Value) Hex() string {
	return "0x" + hex.EncodeToString(v[:])
}

func (v Value) String() string {
	return v.Hex()
}

// Uint256 interprets the value as an unsigned big-endian integer.
func (v Value) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes32(v[:])
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(input []byte) error {
	parsed, err := ParseValue(string(input))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// CheckpointRecord is the latest accepted bounded checkpoint of an account.
type CheckpointRecord struct {
	Value       Value
	Sequence    uint64
	CommittedAt uint64
}

type CheckpointRecordJSON struct {
	Value       Value             `json:"value"`
	Sequence    common.JSONUint64 `json:"sequence"`
	CommittedAt common.JSONUint64 `json:"committed_at"`
}

func NewCheckpointRecordJSON(rec CheckpointRecord) CheckpointRecordJSON {
	return CheckpointRecordJSON{
		Value:       rec.Value,
		Sequence:    common.JSONUint64(rec.Sequence),
		CommittedAt: common.JSONUint64(rec.CommittedAt),
	}
}

func (rec CheckpointRecordJSON) CheckpointRecord() CheckpointRecord {
	return CheckpointRecord{
		Value:       rec.Value,
		Sequence:    uint64(rec.Sequence),
		CommittedAt: uint64(rec.CommittedAt),
	}
}

func (rec CheckpointRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(NewCheckpointRecordJSON(rec))
}

func (rec *CheckpointRecord) UnmarshalJSON(data []byte) error {
	var r CheckpointRecordJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*rec = r.CheckpointRecord()
	return nil
}

// Copy returns a deep copy of the record.
func (rec *CheckpointRecord) Copy() *CheckpointRecord {
	if rec == nil {
		return nil
	}
	recCopy := *rec
	return &recCopy
}

// Next returns the record that replaces rec when value is accepted at height.
// A nil rec yields the first record of an account.
func (rec *CheckpointRecord) Next(value Value, height uint64) *CheckpointRecord {
	next := &CheckpointRecord{
		Value:       value,
		CommittedAt: height,
	}
	if rec != nil {
		next.Sequence = rec.Sequence + 1
	}
	return next
}

func (rec *CheckpointRecord) String() string {
	if rec == nil {
		return "nil-CheckpointRecord"
	}
	return fmt.Sprintf("CheckpointRecord{%v seq:%v at:%v}", rec.Value, rec.Sequence, rec.CommittedAt)
}

// UnboundedRecord is the latest checkpoint submitted without bound policy.
// Data has arbitrary length.
type UnboundedRecord struct {
	Data        common.Bytes
	Sequence    uint64
	CommittedAt uint64
}

type UnboundedRecordJSON struct {
	Data        string            `json:"data"`
	Sequence    common.JSONUint64 `json:"sequence"`
	CommittedAt common.JSONUint64 `json:"committed_at"`
}

func (rec UnboundedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(UnboundedRecordJSON{
		Data:        "0x" + hex.EncodeToString(rec.Data),
		Sequence:    common.JSONUint64(rec.Sequence),
		CommittedAt: common.JSONUint64(rec.CommittedAt),
	})
}

func (rec *UnboundedRecord) UnmarshalJSON(data []byte) error {
	var r UnboundedRecordJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(r.Data, "0x"))
	if err != nil {
		return err
	}
	rec.Data = raw
	rec.Sequence = uint64(r.Sequence)
	rec.CommittedAt = uint64(r.CommittedAt)
	return nil
}

func (rec *UnboundedRecord) String() string {
	if rec == nil {
		return "nil-UnboundedRecord"
	}
	return fmt.Sprintf("UnboundedRecord{%v bytes seq:%v at:%v}", len(rec.Data), rec.Sequence, rec.CommittedAt)
}

package types

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/thetatoken/checkpoint/common"
)

// unboundedRecordRLP is the persisted form of UnboundedRecord; Data is
// snappy compressed.
type unboundedRecordRLP struct {
	Data        []byte
	Sequence    uint64
	CommittedAt uint64
}

// ----------------- Common -------------------

func ToBytes(a interface{}) ([]byte, error) {
	switch v := a.(type) {
	default:
		return nil, errors.New(fmt.Sprintf("ToBytes: Unsupported type: %v", reflect.TypeOf(a)))
	case *CheckpointRecord:
		return rlp.EncodeToBytes(v)
	case *UnboundedRecord:
		return rlp.EncodeToBytes(&unboundedRecordRLP{
			Data:        snappy.Encode(nil, v.Data),
			Sequence:    v.Sequence,
			CommittedAt: v.CommittedAt,
		})
	}
}

func FromBytes(in []byte, a interface{}) error {
	switch v := a.(type) {
	default:
		return errors.New(fmt.Sprintf("FromBytes: Unsupported type: %v", reflect.TypeOf(a)))
	case *CheckpointRecord:
		return rlp.DecodeBytes(in, v)
	case *UnboundedRecord:
		var r unboundedRecordRLP
		if err := rlp.DecodeBytes(in, &r); err != nil {
			return err
		}
		data, err := snappy.Decode(nil, r.Data)
		if err != nil {
			return errors.Wrap(err, "FromBytes: corrupted unbounded record")
		}
		v.Data = common.Bytes(data)
		v.Sequence = r.Sequence
		v.CommittedAt = r.CommittedAt
		return nil
	}
}

package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/thetatoken/checkpoint/common"
)

// Transaction carries contract call data signed by its sender.
type Transaction struct {
	ChainID   string
	From      common.Address
	Nonce     uint64
	Data      common.Bytes
	Signature common.Bytes
}

type unsignedTx struct {
	ChainID string
	From    common.Address
	Nonce   uint64
	Data    []byte
}

// TransactionJSON is the RPC form of a transaction.
type TransactionJSON struct {
	ChainID   string            `json:"chain_id"`
	From      common.Address    `json:"from"`
	Nonce     common.JSONUint64 `json:"nonce"`
	Data      hexutil.Bytes     `json:"data"`
	Signature hexutil.Bytes     `json:"signature"`
}

func (tx Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(TransactionJSON{
		ChainID:   tx.ChainID,
		From:      tx.From,
		Nonce:     common.JSONUint64(tx.Nonce),
		Data:      hexutil.Bytes(tx.Data),
		Signature: hexutil.Bytes(tx.Signature),
	})
}

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var a TransactionJSON
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	tx.ChainID = a.ChainID
	tx.From = a.From
	tx.Nonce = uint64(a.Nonce)
	tx.Data = common.Bytes(a.Data)
	tx.Signature = common.Bytes(a.Signature)
	return nil
}

// SignBytes returns the bytes the sender signs: the RLP encoding of every
// field except the signature.
func (tx *Transaction) SignBytes() []byte {
	raw, err := rlp.EncodeToBytes(unsignedTx{
		ChainID: tx.ChainID,
		From:    tx.From,
		Nonce:   tx.Nonce,
		Data:    tx.Data,
	})
	if err != nil {
		// Every field is RLP encodable.
		panic(err)
	}
	return raw
}

// SigningHash is the keccak256 hash of SignBytes.
func (tx *Transaction) SigningHash() common.Hash {
	return Keccak256Hash(tx.SignBytes())
}

// Hash identifies the transaction, signature included.
func (tx *Transaction) Hash() common.Hash {
	return Keccak256Hash(tx.ToBytes())
}

// ToBytes returns the RLP encoding of the signed transaction.
func (tx *Transaction) ToBytes() []byte {
	raw, err := rlp.EncodeToBytes(tx)
	if err != nil {
		panic(err)
	}
	return raw
}

// TransactionFromBytes decodes a signed transaction.
func TransactionFromBytes(raw []byte) (*Transaction, error) {
	tx := &Transaction{}
	if err := rlp.DecodeBytes(raw, tx); err != nil {
		return nil, errors.Wrap(err, "failed to decode transaction")
	}
	return tx, nil
}

func (tx *Transaction) String() string {
	return fmt.Sprintf("Transaction{chain: %v, from: %v, nonce: %v, data: %v}",
		tx.ChainID, tx.From.Hex(), tx.Nonce, hexutil.Encode(tx.Data))
}

// SignTx sets From to the address of key and signs the transaction.
func SignTx(tx *Transaction, key *PrivateKey) error {
	tx.From = key.Address()
	sig, err := key.Sign(tx.SigningHash().Bytes())
	if err != nil {
		return err
	}
	tx.Signature = sig
	return nil
}

// RecoverSender returns the signer of the transaction. It fails if the
// signature is malformed or the signer is not tx.From.
func RecoverSender(tx *Transaction) (common.Address, error) {
	signer, err := RecoverAddress(tx.SigningHash().Bytes(), tx.Signature)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to recover sender")
	}
	if signer != tx.From {
		return common.Address{}, fmt.Errorf("transaction from %v is signed by %v", tx.From.Hex(), signer.Hex())
	}
	return signer, nil
}

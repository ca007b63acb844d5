package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha1"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/thetatoken/checkpoint/common"
)

// A knowledge commitment binds an h160 address to a hotkey: the 64-byte
// public key followed by the 64-byte [R || S] signature of the hotkey.
// The hotkey is hashed with SHA-1 so that commitments interoperate with
// the ones published by the python ecdsa tooling.
const (
	commitmentPubKeyLength    = 64
	commitmentSignatureLength = 64

	// KnowledgeCommitmentLength is the size of a well-formed commitment
	KnowledgeCommitmentLength = commitmentPubKeyLength + commitmentSignatureLength
)

func commitmentDigest(hotkey string) []byte {
	digest := sha1.Sum([]byte(hotkey))
	return digest[:]
}

// CreateKnowledgeCommitment signs hotkey with key.
func CreateKnowledgeCommitment(hotkey string, key *PrivateKey) (common.Bytes, error) {
	r, s, err := ecdsa.Sign(rand.Reader, key.privKey, commitmentDigest(hotkey))
	if err != nil {
		return nil, err
	}

	pub := ethcrypto.FromECDSAPub(&key.privKey.PublicKey)[1:]
	data := make([]byte, 0, KnowledgeCommitmentLength)
	data = append(data, pub...)
	data = append(data, math.PaddedBigBytes(r, 32)...)
	data = append(data, math.PaddedBigBytes(s, 32)...)
	return data, nil
}

// UnpackKnowledgeCommitment verifies data against hotkey and returns the
// committed address. The boolean is false if the public key is not a curve
// point, the data is truncated or the signature does not verify.
func UnpackKnowledgeCommitment(hotkey string, data []byte) (common.Address, bool) {
	if len(data) != KnowledgeCommitmentLength {
		return common.Address{}, false
	}

	pubBytes := append([]byte{0x04}, data[:commitmentPubKeyLength]...)
	pub, err := ethcrypto.UnmarshalPubkey(pubBytes)
	if err != nil {
		return common.Address{}, false
	}

	sig := data[commitmentPubKeyLength:]
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	if !ecdsa.Verify(pub, commitmentDigest(hotkey), r, s) {
		return common.Address{}, false
	}
	return ethcrypto.PubkeyToAddress(*pub), true
}

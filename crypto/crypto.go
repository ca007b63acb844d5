package crypto

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/thetatoken/checkpoint/common"
)

// PrivateKeyEnv is the environment variable the CLI reads a hex private key from.
const PrivateKeyEnv = "PRIVATE_KEY"

// SignatureLength is the length of a recoverable [R || S || V] signature.
const SignatureLength = ethcrypto.SignatureLength

// ----------------------- Keys ----------------------- //

//
// PublicKey wraps a secp256k1 public key
//
type PublicKey struct {
	pubKey *ecdsa.PublicKey
}

// Address returns the address corresponding to the public key
func (pk *PublicKey) Address() common.Address {
	return ethcrypto.PubkeyToAddress(*pk.pubKey)
}

// IsEmpty indicates whether the public key is empty
func (pk *PublicKey) IsEmpty() bool {
	return pk == nil || pk.pubKey == nil || pk.pubKey.X == nil || pk.pubKey.Y == nil
}

// ToBytes returns the 65-byte uncompressed representation of the public key
func (pk *PublicKey) ToBytes() common.Bytes {
	return ethcrypto.FromECDSAPub(pk.pubKey)
}

//
// PrivateKey wraps a secp256k1 private key
//
type PrivateKey struct {
	privKey *ecdsa.PrivateKey
}

// PublicKey returns the public key corresponding to the private key
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{pubKey: &sk.privKey.PublicKey}
}

// Address returns the address of the key pair
func (sk *PrivateKey) Address() common.Address {
	return sk.PublicKey().Address()
}

// ToBytes returns the 32-byte private key
func (sk *PrivateKey) ToBytes() common.Bytes {
	return ethcrypto.FromECDSA(sk.privKey)
}

// ECDSA returns the underlying key
func (sk *PrivateKey) ECDSA() *ecdsa.PrivateKey {
	return sk.privKey
}

// Sign signs a 32-byte hash, producing a recoverable signature
func (sk *PrivateKey) Sign(hash []byte) (common.Bytes, error) {
	return ethcrypto.Sign(hash, sk.privKey)
}

// GenerateKeyPair generates a random private/public key pair
func GenerateKeyPair() (*PrivateKey, *PublicKey, error) {
	ske, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	sk := &PrivateKey{privKey: ske}
	return sk, sk.PublicKey(), nil
}

// PrivateKeyFromECDSA wraps an existing ecdsa key
func PrivateKeyFromECDSA(key *ecdsa.PrivateKey) *PrivateKey {
	return &PrivateKey{privKey: key}
}

// LoadKeyFromHex parses a hex private key, with or without the 0x prefix
func LoadKeyFromHex(hexkey string) (*PrivateKey, error) {
	hexkey = strings.TrimPrefix(strings.TrimSpace(hexkey), "0x")
	ske, err := ethcrypto.HexToECDSA(hexkey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}
	return &PrivateKey{privKey: ske}, nil
}

// LoadKeyFromEnv loads the private key held by PRIVATE_KEY. The boolean is
// false if the variable is not set.
func LoadKeyFromEnv() (*PrivateKey, bool, error) {
	hexkey, ok := os.LookupEnv(PrivateKeyEnv)
	if !ok || len(hexkey) == 0 {
		return nil, false, nil
	}
	key, err := LoadKeyFromHex(hexkey)
	return key, true, err
}

// ----------------------- Crypto Utils for Other Modules ----------------------- //

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) common.Hash {
	return ethcrypto.Keccak256Hash(data...)
}

// RecoverAddress returns the address of the key that produced sig over hash.
func RecoverAddress(hash []byte, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length: %v", len(sig))
	}
	pub, err := ethcrypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

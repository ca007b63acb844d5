package crypto

import (
	"io/ioutil"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/pkg/errors"

	"github.com/thetatoken/checkpoint/common"
)

// KeyStore keeps private keys in passphrase encrypted files under a directory.
type KeyStore struct {
	ks *keystore.KeyStore
}

// NewKeyStore opens the key directory. Light scrypt parameters trade
// security for speed and are meant for tests and throwaway keys.
func NewKeyStore(keysDir string, light bool) *KeyStore {
	scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
	if light {
		scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	}
	return &KeyStore{ks: keystore.NewKeyStore(keysDir, scryptN, scryptP)}
}

// StoreKey encrypts key with password and writes it to the key directory.
func (ks *KeyStore) StoreKey(key *PrivateKey, password string) (common.Address, error) {
	acct, err := ks.ks.ImportECDSA(key.privKey, password)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to store key")
	}
	return acct.Address, nil
}

// LoadKey decrypts the key of address.
func (ks *KeyStore) LoadKey(address common.Address, password string) (*PrivateKey, error) {
	acct, err := ks.ks.Find(accounts.Account{Address: address})
	if err != nil {
		return nil, errors.Wrapf(err, "no key for %v", address.Hex())
	}
	keyJSON, err := ioutil.ReadFile(acct.URL.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read key file %v", acct.URL.Path)
	}
	key, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decrypt key of %v", address.Hex())
	}
	return &PrivateKey{privKey: key.PrivateKey}, nil
}

// HasKey tells whether the directory holds a key for address.
func (ks *KeyStore) HasKey(address common.Address) bool {
	return ks.ks.HasAddress(address)
}

// ListAddresses returns the addresses of all stored keys.
func (ks *KeyStore) ListAddresses() []common.Address {
	accts := ks.ks.Accounts()
	addresses := make([]common.Address, 0, len(accts))
	for _, acct := range accts {
		addresses = append(addresses, acct.Address)
	}
	return addresses
}

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bgentry/speakeasy"
	isatty "github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/crypto"
	"github.com/thetatoken/checkpoint/rpc"
)

var buf *bufio.Reader

var (
	green = ansi.ColorFunc("green+b")
	red   = ansi.ColorFunc("red+b")
)

func GetPassword(prompt string) (password string, err error) {
	if inputIsTty() {
		password, err = speakeasy.Ask(prompt)
	} else {
		password, err = stdinLine()
	}
	return
}

func inputIsTty() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func outputIsTty() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func stdinLine() (string, error) {
	if buf == nil {
		buf = bufio.NewReader(os.Stdin)
	}
	line, err := buf.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Error prints the message to stderr and exits with status 1.
func Error(msg string, args ...interface{}) {
	msg = fmt.Sprintf(msg, args...)
	if outputIsTty() {
		msg = red(msg)
	}
	fmt.Fprint(os.Stderr, msg)
	os.Exit(1)
}

// Success prints a highlighted line to stdout.
func Success(msg string, args ...interface{}) {
	msg = fmt.Sprintf(msg, args...)
	if outputIsTty() {
		msg = green(msg)
	}
	fmt.Println(msg)
}

// NewClient connects to the configured node endpoint.
func NewClient() rpc.Client {
	return rpc.NewClient(viper.GetString(CfgRemoteRPCEndpoint))
}

// KeysDir returns the key directory under the config path of cmd.
func KeysDir(cmd *cobra.Command) string {
	cfgPath := cmd.Flag("config").Value.String()
	return path.Join(cfgPath, "keys")
}

// LoadSigner returns the key transactions are signed with: the key in
// PRIVATE_KEY if set, otherwise the keystore key of fromAddr.
func LoadSigner(cmd *cobra.Command, fromAddr string) (*crypto.PrivateKey, error) {
	key, ok, err := crypto.LoadKeyFromEnv()
	if ok {
		return key, err
	}
	if fromAddr == "" {
		return nil, fmt.Errorf("either %v must be set or --from must be given", crypto.PrivateKeyEnv)
	}
	if !common.IsHexAddress(fromAddr) {
		return nil, fmt.Errorf("invalid address: %v", fromAddr)
	}

	password, err := GetPassword("Please enter password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to get password: %v", err)
	}
	ks := crypto.NewKeyStore(KeysDir(cmd), false)
	return ks.LoadKey(common.HexToAddress(fromAddr), password)
}

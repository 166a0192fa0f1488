// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

// masterKeyAction moves the block signing key in or out of the data dir as
// an encrypted keystore JSON.
func masterKeyAction(ctx *cli.Context) error {
	doImport, doExport := ctx.Bool(importMasterKeyFlag.Name), ctx.Bool(exportMasterKeyFlag.Name)
	if doImport == doExport {
		return fmt.Errorf("exactly one of --%s and --%s is required", importMasterKeyFlag.Name, exportMasterKeyFlag.Name)
	}
	makeDataDir(ctx)
	if doImport {
		return importMasterKey(os.Stdin, masterKeyPath(ctx))
	}
	return exportMasterKey(os.Stdout, masterKeyPath(ctx))
}

func importMasterKey(in *os.File, keyPath string) error {
	if isatty.IsTerminal(in.Fd()) {
		fmt.Println("Input JSON keystore (end with ^d):")
	}
	keyJSON, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	if !json.Valid(keyJSON) {
		return errors.New("keystore is not valid JSON")
	}
	passphrase, err := promptPassphrase("Enter passphrase: ")
	if err != nil {
		return err
	}
	key, err := keystore.DecryptKey(keyJSON, passphrase)
	if err != nil {
		return errors.WithMessage(err, "decrypt keystore")
	}
	if err := crypto.SaveECDSA(keyPath, key.PrivateKey); err != nil {
		return err
	}
	fmt.Println("Master key imported:", ledger.Address(key.Address))
	return nil
}

func exportMasterKey(out *os.File, keyPath string) error {
	key, err := loadOrGeneratePrivateKey(keyPath)
	if err != nil {
		return err
	}
	passphrase, err := readNewPassphrase()
	if err != nil {
		return err
	}
	keyJSON, err := keystore.EncryptKey(&keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}, passphrase, keystore.StandardScryptN, keystore.StandardScryptP)
	if err != nil {
		return err
	}
	if isatty.IsTerminal(out.Fd()) {
		fmt.Fprintln(out, "=== JSON keystore ===")
	}
	_, err = fmt.Fprintln(out, string(keyJSON))
	return err
}

// readNewPassphrase asks twice and requires both answers to match.
func readNewPassphrase() (string, error) {
	passphrase, err := promptPassphrase("Enter passphrase: ")
	if err != nil {
		return "", err
	}
	if passphrase == "" {
		return "", errors.New("non-empty passphrase required")
	}
	confirm, err := promptPassphrase("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if passphrase != confirm {
		return "", errors.New("passphrase confirmation mismatch")
	}
	return passphrase, nil
}

package main

import (
	"encoding/json"
	"io"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/solana-instruction-api/pkg/app"
	"github.com/code-payments/solana-instruction-api/pkg/code/common"
	"github.com/code-payments/solana-instruction-api/pkg/code/instruction"
	webinstruction "github.com/code-payments/solana-instruction-api/pkg/code/server/web/instruction"
	"github.com/code-payments/solana-instruction-api/pkg/solana"
	"github.com/code-payments/solana-instruction-api/pkg/solana/token"
)

const (
	configFlag    = "config"
	messageFlag   = "message"
	secretFlag    = "secret"
	signatureFlag = "signature"
	pubkeyFlag    = "pubkey"
	ownerFlag     = "owner"
	mintFlag      = "mint"
)

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:           "instruction-api",
		Short:         "Builds unsigned Solana instructions and handles ed25519 keys",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(
		serveCommand(),
		keypairCommand(),
		signCommand(),
		verifyCommand(),
		ataCommand(),
	)
	return c
}

func serveCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			configPath, err := c.Flags().GetString(configFlag)
			if err != nil {
				return err
			}

			return app.Run(
				webinstruction.NewApp(common.DefaultKeypairGenerator, webinstruction.WithEnvConfigs()),
				app.WithConfigPath(configPath),
				app.WithContext(c.Context()),
			)
		},
	}
	c.Flags().String(configFlag, "config.yaml", "configuration file path")
	return c
}

func keypairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keypair",
		Short: "Generates a new keypair",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			account, err := common.DefaultKeypairGenerator.Generate()
			if err != nil {
				return err
			}

			return writeJSON(c.OutOrStdout(), map[string]string{
				"pubkey": account.PublicKey().ToBase58(),
				"secret": account.PrivateKey().ToBase58(),
			})
		},
	}
}

func signCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign",
		Short: "Signs a message with a base58 secret key",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			message, _ := c.Flags().GetString(messageFlag)
			encodedSecret, _ := c.Flags().GetString(secretFlag)

			secret, err := instruction.ParseSecretKey(secretFlag, encodedSecret)
			if err != nil {
				return err
			}

			signature, err := common.Sign([]byte(message), secret)
			if err != nil {
				return errors.Wrap(err, secretFlag)
			}

			return writeJSON(c.OutOrStdout(), map[string]string{
				"signature": signature.ToBase58(),
				"pubkey":    base58.Encode(secret[32:]),
				"message":   message,
			})
		},
	}
	c.Flags().String(messageFlag, "", "message to sign")
	c.Flags().String(secretFlag, "", "base58 encoded 64 byte secret key")
	return c
}

func verifyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Verifies a detached signature",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			message, _ := c.Flags().GetString(messageFlag)
			encodedSignature, _ := c.Flags().GetString(signatureFlag)
			encodedPublicKey, _ := c.Flags().GetString(pubkeyFlag)

			signature, err := instruction.ParseSignature(signatureFlag, encodedSignature)
			if err != nil {
				return err
			}

			publicKey, err := instruction.ParsePublicKey(pubkeyFlag, encodedPublicKey)
			if err != nil {
				return err
			}

			valid, err := common.Verify([]byte(message), signature, publicKey)
			if err != nil {
				return err
			}

			return writeJSON(c.OutOrStdout(), map[string]any{
				"valid":   valid,
				"message": message,
				"pubkey":  encodedPublicKey,
			})
		},
	}
	c.Flags().String(messageFlag, "", "signed message")
	c.Flags().String(signatureFlag, "", "base58 encoded signature")
	c.Flags().String(pubkeyFlag, "", "base58 encoded public key")
	return c
}

func ataCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "ata",
		Short: "Derives the associated token account for an owner and mint",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			owner, err := parseAddressFlag(c, ownerFlag)
			if err != nil {
				return err
			}

			mint, err := parseAddressFlag(c, mintFlag)
			if err != nil {
				return err
			}

			account, err := token.GetAssociatedAccount(owner, mint)
			if err != nil {
				return err
			}

			return writeJSON(c.OutOrStdout(), map[string]string{
				"owner":   owner.ToBase58(),
				"mint":    mint.ToBase58(),
				"address": account.ToBase58(),
			})
		},
	}
	c.Flags().String(ownerFlag, "", "base58 encoded wallet address")
	c.Flags().String(mintFlag, "", "base58 encoded mint address")
	return c
}

func parseAddressFlag(c *cobra.Command, name string) (solana.PublicKey, error) {
	value, err := c.Flags().GetString(name)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return instruction.ParseAddress(name, value)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

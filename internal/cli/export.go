package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avelkov/focusboard/internal/report"
)

var flagExportEncrypt bool

var exportCmd = &cobra.Command{
	Use:   "export [vault]",
	Short: "Export the full session history as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var passphrase string
		if flagExportEncrypt {
			p, err := promptPassphrase(true)
			if err != nil {
				return err
			}
			passphrase = p
		}
		sessions, err := loadSessions(args)
		if err != nil {
			return err
		}
		path, err := report.ExportHistory(sessions, passphrase)
		if err != nil {
			return err
		}
		fmt.Println("History exported to", path)
		return nil
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <file>",
	Short: "Decrypt an encrypted export to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		passphrase, err := promptPassphrase(false)
		if err != nil {
			return err
		}
		plain, err := report.DecryptExport(data, passphrase)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(plain)
		return err
	},
}

func init() {
	exportCmd.Flags().BoolVar(&flagExportEncrypt, "encrypt", false, "encrypt the export with a passphrase")
	exportCmd.AddCommand(decryptCmd)
}

// promptPassphrase reads a passphrase without echo, asking twice when
// confirm is set.
func promptPassphrase(confirm bool) (string, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", errors.New("empty passphrase")
	}
	if !confirm {
		return string(first), nil
	}
	fmt.Fprint(os.Stderr, "Confirm passphrase: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passphrases do not match")
	}
	return string(first), nil
}

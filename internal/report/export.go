package report

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/util"
)

// AppVersion is stamped into exports; overridden at build time.
var AppVersion = "0"

// ErrWrongPassphrase reports a decryption failure.
var ErrWrongPassphrase = errors.New("incorrect passphrase")

type historyExport struct {
	AppVersion string            `json:"app_version"`
	ExportedAt string            `json:"exported_at"`
	Sessions   []exportedSession `json:"sessions"`
}

type exportedSession struct {
	CardID    string `json:"card_id"`
	CardTitle string `json:"card_title"`
	Mode      string `json:"mode"`
	Start     string `json:"start"`
	End       string `json:"end"`
	DurationS int64  `json:"duration_seconds"`
}

type encryptedExport struct {
	Encrypted  bool   `json:"encrypted"`
	AppVersion string `json:"app_version"`
	ExportedAt string `json:"exported_at"`
	Nonce      string `json:"nonce"`
	Data       string `json:"data"`
}

// ExportHistory writes the full session history as JSON into the reports
// directory, AES-GCM-encrypted when a passphrase is given. It returns the
// path of the written file.
func ExportHistory(sessions []models.FocusSession, passphrase string) (string, error) {
	export := historyExport{
		AppVersion: AppVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Sessions:   make([]exportedSession, 0, len(sessions)),
	}
	for _, s := range sessions {
		export.Sessions = append(export.Sessions, exportedSession{
			CardID:    s.CardID,
			CardTitle: s.CardTitle,
			Mode:      string(s.Mode),
			Start:     s.Start.Format(time.RFC3339),
			End:       s.End.Format(time.RFC3339),
			DurationS: int64(s.Duration.Seconds()),
		})
	}

	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}

	exportRoot := filepath.Join(util.ReportsDir(config.AppName), "exports")
	if err := os.MkdirAll(exportRoot, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(exportRoot, fmt.Sprintf("focusboard_export_%s.json", time.Now().Format("20060102_150405")))

	if passphrase == "" {
		if err := os.WriteFile(filename, raw, 0o600); err != nil {
			return "", err
		}
		return filename, nil
	}

	enc, err := encryptExportData(raw, passphrase)
	if err != nil {
		return "", err
	}
	encBytes, err := json.MarshalIndent(enc, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, encBytes, 0o600); err != nil {
		return "", err
	}
	return filename, nil
}

func encryptExportData(plaintext []byte, passphrase string) (encryptedExport, error) {
	gcm, err := exportCipher(passphrase)
	if err != nil {
		return encryptedExport{}, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return encryptedExport{}, err
	}
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return encryptedExport{
		Encrypted:  true,
		AppVersion: AppVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Data:       base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// DecryptExport recovers the plaintext JSON from an encrypted export file.
func DecryptExport(data []byte, passphrase string) ([]byte, error) {
	var enc encryptedExport
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	if !enc.Encrypted {
		return nil, errors.New("export is not encrypted")
	}
	gcm, err := exportCipher(passphrase)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(enc.Nonce)
	if err != nil {
		return nil, fmt.Errorf("parse export nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(enc.Data)
	if err != nil {
		return nil, fmt.Errorf("parse export data: %w", err)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

func exportCipher(passphrase string) (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

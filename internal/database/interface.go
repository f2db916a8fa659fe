package database

// SettingsRepository defines the settings operations consumed by the rest of
// the app; the timer's duration resolver reads through it as the global
// layer.
type SettingsRepository interface {
	GetSetting(key string) (string, bool)
	SetSetting(key, value string) error
}

// VaultRepository tracks recently opened vaults.
type VaultRepository interface {
	TouchVault(path string) error
	LastVault() (string, bool)
}

var _ SettingsRepository = (*Database)(nil)
var _ VaultRepository = (*Database)(nil)

package board

// GlobalStore is the global settings layer, satisfied by
// database.SettingsRepository.
type GlobalStore interface {
	GetSetting(key string) (string, bool)
}

// Settings layers per-board frontmatter overrides over the global store. It
// implements the timer engine's SettingsSource.
type Settings struct {
	Vault  *Vault
	Global GlobalStore
}

// BoardSetting returns the frontmatter override of the board owning cardID.
func (s Settings) BoardSetting(cardID, key string) (string, bool) {
	if s.Vault == nil {
		return "", false
	}
	b, ok := s.Vault.BoardFor(cardID)
	if !ok {
		return "", false
	}
	v, ok := b.Settings[key]
	return v, ok
}

// GlobalSetting returns the value from the global settings store.
func (s Settings) GlobalSetting(key string) (string, bool) {
	if s.Global == nil {
		return "", false
	}
	return s.Global.GetSetting(key)
}

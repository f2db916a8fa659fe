package database

// GetSetting returns the stored value for a key.
func (d *Database) GetSetting(key string) (string, bool) {
	var value *string
	err := d.DB.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	if value != nil {
		return *value, true
	}
	return "", false
}

// SetSetting upserts a key/value pair.
func (d *Database) SetSetting(key, value string) error {
	_, err := d.DB.Exec("INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return err
}

// TouchVault records the vault path as most recently opened.
func (d *Database) TouchVault(path string) error {
	_, err := d.DB.Exec("INSERT INTO vaults (path, last_opened) VALUES (?, CURRENT_TIMESTAMP) ON CONFLICT(path) DO UPDATE SET last_opened = CURRENT_TIMESTAMP", path)
	return err
}

// LastVault returns the most recently opened vault path.
func (d *Database) LastVault() (string, bool) {
	var path string
	err := d.DB.QueryRow("SELECT path FROM vaults ORDER BY last_opened DESC LIMIT 1").Scan(&path)
	if err != nil {
		return "", false
	}
	return path, true
}

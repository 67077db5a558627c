package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// TokenFile persists the bearer-variant session between CLI
// invocations, playing the role the browser client gives tab-scoped
// storage. Only the session identity and token are stored — never
// complaint or branch data.
type TokenFile struct {
	Path string
}

// DefaultTokenFile places the session file under the user config dir.
func DefaultTokenFile() (TokenFile, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return TokenFile{}, fmt.Errorf("session: config dir: %w", err)
	}
	return TokenFile{Path: filepath.Join(dir, "shikoyat", "session.yaml")}, nil
}

// Save writes the session to disk, creating the directory as needed.
// The file is owner-readable only: it contains a live token.
func (t TokenFile) Save(sess models.Session) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o700); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := os.WriteFile(t.Path, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", t.Path, err)
	}
	return nil
}

// Load reads a previously saved session. The second return is false
// when no session file exists.
func (t TokenFile) Load() (models.Session, bool, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Session{}, false, nil
		}
		return models.Session{}, false, fmt.Errorf("session: read %s: %w", t.Path, err)
	}
	var sess models.Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return models.Session{}, false, fmt.Errorf("session: parse %s: %w", t.Path, err)
	}
	if sess.WorkerID == 0 {
		return models.Session{}, false, nil
	}
	return sess, true, nil
}

// Clear deletes the session file. A missing file is not an error.
func (t TokenFile) Clear() error {
	if err := os.Remove(t.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove %s: %w", t.Path, err)
	}
	return nil
}

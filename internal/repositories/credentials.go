package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"scoreline/internal/models"
	"scoreline/internal/session"
)

// Fixed keys in the credentials table. Both are cleared together on logout.
const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

var _ session.CredentialStore = (*CredentialRepository)(nil)

// CredentialRepository implements [session.CredentialStore] over the
// credentials key-value table.
type CredentialRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewCredentialRepository creates a credential store over the given database.
func NewCredentialRepository(db *sql.DB, logger *log.Logger) *CredentialRepository {
	return &CredentialRepository{db: db, logger: logger}
}

// StoreToken persists the bearer token under its fixed key.
func (r *CredentialRepository) StoreToken(token *oauth2.Token) error {
	if token == nil {
		return r.RemoveToken()
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return r.set(tokenKey, string(data))
}

// Token returns the persisted bearer token, nil when absent. A value that no
// longer parses is treated as absent and logged, never surfaced as an error.
func (r *CredentialRepository) Token() (*oauth2.Token, error) {
	value, found, err := r.get(tokenKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(value), &token); err != nil {
		r.logger.Warn("discarding unparseable stored token", "error", err)
		return nil, nil
	}
	if token.AccessToken == "" {
		return nil, nil
	}
	return &token, nil
}

// RemoveToken deletes the persisted token.
func (r *CredentialRepository) RemoveToken() error {
	return r.delete(tokenKey)
}

// storedUser is the serialized shape of a user in the credentials table.
// Field names mirror the backend's wire naming.
type storedUser struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Roles          []string   `json:"roles,omitempty"`
	ProfilePicture *string    `json:"profilePicture,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// StoreUser persists the serialized user under its fixed key.
func (r *CredentialRepository) StoreUser(user *models.User) error {
	if user == nil {
		return r.RemoveUser()
	}

	data, err := json.Marshal(storedUser{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Roles:          user.Roles,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return r.set(userKey, string(data))
}

// StoredUser returns the persisted user, nil when absent. Corrupt stored JSON
// is logged and treated as absence.
func (r *CredentialRepository) StoredUser() (*models.User, error) {
	value, found, err := r.get(userKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var su storedUser
	if err := json.Unmarshal([]byte(value), &su); err != nil {
		r.logger.Warn("discarding unparseable stored user", "error", err)
		return nil, nil
	}

	user := &models.User{
		ID:             su.ID,
		Username:       su.Username,
		Email:          su.Email,
		Roles:          su.Roles,
		ProfilePicture: su.ProfilePicture,
		CreatedAt:      su.CreatedAt,
	}
	if len(user.Roles) == 0 {
		user.Roles = []string{models.RoleUser}
	}
	return user, nil
}

// RemoveUser deletes the persisted user.
func (r *CredentialRepository) RemoveUser() error {
	return r.delete(userKey)
}

func (r *CredentialRepository) set(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store credential %s: %w", key, err)
	}
	return nil
}

func (r *CredentialRepository) get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read credential %s: %w", key, err)
	}
	return value, true, nil
}

func (r *CredentialRepository) delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete credential %s: %w", key, err)
	}
	return nil
}

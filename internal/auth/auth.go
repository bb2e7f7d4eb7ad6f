package auth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// User is an authenticated principal. The bearer token scopes HTTP calls;
// the chat bindings map bot capture channels back to the same owner.
type User struct {
	ID             string `yaml:"id"`
	Token          string `yaml:"token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	DiscordUserID  string `yaml:"discord_user_id"`
}

type usersFile struct {
	Users []User `yaml:"users"`
}

// Registry resolves credentials to owners. It is loaded once at startup;
// every record query downstream is scoped to the resolved owner, which is
// what enforces row-level authorization.
type Registry struct {
	byToken    map[string]*User
	byTelegram map[int64]*User
	byDiscord  map[string]*User
	users      []User
}

// Load reads the user registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var file usersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}

	return NewRegistry(file.Users)
}

// NewRegistry builds a registry from explicit users. Used directly in tests.
func NewRegistry(users []User) (*Registry, error) {
	r := &Registry{
		byToken:    make(map[string]*User),
		byTelegram: make(map[int64]*User),
		byDiscord:  make(map[string]*User),
		users:      users,
	}

	for i := range users {
		u := &r.users[i]

		if u.ID == "" {
			return nil, fmt.Errorf("user %d: missing id", i)
		}

		if u.Token == "" {
			return nil, fmt.Errorf("user %s: missing token", u.ID)
		}

		if _, dup := r.byToken[u.Token]; dup {
			return nil, fmt.Errorf("user %s: duplicate token", u.ID)
		}

		r.byToken[u.Token] = u

		if u.TelegramChatID != 0 {
			r.byTelegram[u.TelegramChatID] = u
		}

		if u.DiscordUserID != "" {
			r.byDiscord[u.DiscordUserID] = u
		}
	}

	return r, nil
}

// ByToken resolves a bearer token; ok is false for unknown tokens.
func (r *Registry) ByToken(token string) (*User, bool) {
	u, ok := r.byToken[token]
	return u, ok
}

// ByTelegramChat resolves a telegram chat binding.
func (r *Registry) ByTelegramChat(chatID int64) (*User, bool) {
	u, ok := r.byTelegram[chatID]
	return u, ok
}

// ByDiscordUser resolves a discord user binding.
func (r *Registry) ByDiscordUser(userID string) (*User, bool) {
	u, ok := r.byDiscord[userID]
	return u, ok
}

// Users returns all registered users.
func (r *Registry) Users() []User {
	return r.users
}

// Package accounts is the local credential registry. It binds named
// accounts to API tokens in a YAML file; exactly one account is active
// at a time and becomes the Context the sync engine runs under.
package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

// Account is one registered credential.
type Account struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Role        models.Role `yaml:"role"`
	Token       string      `yaml:"token"`
	Environment string      `yaml:"environment"`
	Active      bool        `yaml:"active"`
}

// Context is what the engine consumes: identity plus authorization
// plus tenant role. It never reads environment variables directly.
type Context struct {
	AccountID   string
	AccountName string
	Token       string
	Environment string
	Role        models.Role
}

func (a Account) Context() Context {
	return Context{
		AccountID:   a.ID,
		AccountName: a.Name,
		Token:       a.Token,
		Environment: a.Environment,
		Role:        a.Role,
	}
}

// Registry is the file-backed account list.
type Registry struct {
	path     string
	Accounts []Account `yaml:"accounts"`
}

// Load reads the registry, returning an empty one when the file does
// not exist yet.
func Load(path string) (*Registry, error) {
	r := &Registry{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}
	return r, nil
}

func (r *Registry) Save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o600)
}

// Add registers an account and makes it active. Re-adding an existing
// id replaces the stored entry.
func (r *Registry) Add(account Account) error {
	r.Remove(account.ID)
	for i := range r.Accounts {
		r.Accounts[i].Active = false
	}
	account.Active = true
	r.Accounts = append(r.Accounts, account)
	return r.Save()
}

// Activate marks the given account as the one sync runs use.
func (r *Registry) Activate(id string) error {
	found := false
	for i := range r.Accounts {
		active := r.Accounts[i].ID == id
		r.Accounts[i].Active = active
		found = found || active
	}
	if !found {
		return fmt.Errorf("account %s is not registered", id)
	}
	return r.Save()
}

// Remove drops an account from the registry. Removing the active
// account leaves no account active.
func (r *Registry) Remove(id string) {
	kept := r.Accounts[:0]
	for _, a := range r.Accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.Accounts = kept
}

// Active returns the account sync runs use.
func (r *Registry) Active() (*Account, error) {
	for i := range r.Accounts {
		if r.Accounts[i].Active {
			return &r.Accounts[i], nil
		}
	}
	return nil, fmt.Errorf("no active account; run accounts add first")
}

// Package i18n holds the dashboard's current language and resolves dot-delimited
// translation keys against per-language tables.
package i18n

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const managerName = "Localization Manager"

// Change describes a language switch delivered to listeners.
type Change struct {
	Language string
	Previous string
}

// Listener is called synchronously after every SetLanguage.
type Listener func(Change)

// Subscription identifies a registered listener.
type Subscription struct {
	id uuid.UUID
}

type registration struct {
	id       uuid.UUID
	listener Listener
}

// Manager owns the current language. It is built once by the composition root and handed
// to the views that need it.
type Manager struct {
	// persistMu orders SetLanguage calls so the stored preference matches current.
	persistMu sync.Mutex
	mu        sync.RWMutex
	tables    Tables
	store     Store
	current   string
	listeners []registration
}

type Config struct {
	// Tables are the translation tables, treated as immutable once handed over.
	Tables Tables
	// Store persists the selected language between runs.
	Store Store
	// DefaultLanguage is used when the store has no saved preference.
	DefaultLanguage string
}

func (c *Config) validate() error {
	var errGrp []error
	if len(c.Tables) == 0 {
		errGrp = append(errGrp, errors.New("translation tables are required"))
	}
	if c.Store == nil {
		errGrp = append(errGrp, errors.New("preference store is required"))
	}
	if c.DefaultLanguage == "" {
		errGrp = append(errGrp, errors.New("default language is required"))
	}
	return errors.Join(errGrp...)
}

// New creates a manager whose current language is the persisted preference, or the
// configured default when none was saved.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	current := cfg.DefaultLanguage
	if saved, ok := cfg.Store.Get(PreferenceKey); ok && saved != "" {
		current = saved
	}

	return &Manager{
		tables:  cfg.Tables,
		store:   cfg.Store,
		current: current,
	}, nil
}

// Start satisfies the app dependency contract. The manager is live from New.
func (m *Manager) Start() error {
	log.Info().Str("language", m.CurrentLanguage()).Msg("localization ready")
	return nil
}

// Stop drops every listener.
func (m *Manager) Stop() error {
	m.mu.Lock()
	m.listeners = nil
	m.mu.Unlock()
	return nil
}

// Name returns the name of the dependency.
func (m *Manager) Name() string {
	return managerName
}

// CurrentLanguage returns the active language code.
func (m *Manager) CurrentLanguage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Languages returns the language codes that have translation tables.
func (m *Manager) Languages() []string {
	return m.tables.Languages()
}

// Lookup resolves key in the current language. It returns ErrMissingTranslation when the
// key is absent or resolves to an empty value.
func (m *Manager) Lookup(key string) (string, error) {
	m.mu.RLock()
	lang := m.current
	m.mu.RUnlock()

	value, ok := resolve(m.tables[lang], key)
	if !ok {
		return "", newError(ErrMissingTranslation, "key %q in language %q", key, lang)
	}
	text, ok := display(value)
	if !ok {
		return "", newError(ErrMissingTranslation, "key %q in language %q has no text", key, lang)
	}
	return text, nil
}

// Translate resolves key in the current language, returning fallback (or key itself when
// no fallback is given) for anything Lookup reports missing.
func (m *Manager) Translate(key string, fallback ...string) string {
	text, err := m.Lookup(key)
	if err == nil {
		return text
	}

	log.Debug().Err(err).Msg("translation fallback")
	if len(fallback) > 0 {
		return fallback[0]
	}
	return key
}

// SetLanguage switches the current language, persists it and notifies listeners in
// registration order. Codes are not checked for a table; unknown codes translate to
// fallbacks. A listener calling SetLanguage re-enters notification without a guard.
func (m *Manager) SetLanguage(code string) {
	m.persistMu.Lock()
	m.mu.Lock()
	previous := m.current
	m.current = code
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	if err := m.store.Set(PreferenceKey, code); err != nil {
		log.Error().Err(err).Str("language", code).Msg("failed to persist language preference")
	}
	m.persistMu.Unlock()

	log.Debug().Str("language", code).Str("previous", previous).Int("listeners", len(listeners)).
		Msg("language changed")

	change := Change{Language: code, Previous: previous}
	for _, reg := range listeners {
		reg.listener(change)
	}
}

// AddListener registers l for language changes. A nil listener is not registered.
func (m *Manager) AddListener(l Listener) Subscription {
	if l == nil {
		return Subscription{}
	}
	reg := registration{id: uuid.New(), listener: l}

	m.mu.Lock()
	m.listeners = append(m.listeners, reg)
	m.mu.Unlock()

	return Subscription{id: reg.id}
}

// RemoveListener unregisters the listener behind sub. Unknown subscriptions are ignored.
func (m *Manager) RemoveListener(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = slices.DeleteFunc(m.listeners, func(reg registration) bool {
		return reg.id == sub.id
	})
}

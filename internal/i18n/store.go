package i18n

//go:generate mockgen -destination=store_mock.go -package=i18n -source=store.go

// PreferenceKey is the preference under which the selected language is persisted.
const PreferenceKey = "language"

// Store is the durable user-preference storage the manager persists the language to.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

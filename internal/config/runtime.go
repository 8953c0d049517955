package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Имена переменных окружения upstream CMS (Strapi)
const (
	EnvStrapiAPIURL   = "STRAPI_API_URL"
	EnvStrapiURL      = "STRAPI_URL" // устаревший алиас STRAPI_API_URL
	EnvStrapiAPIToken = "STRAPI_API_TOKEN"
)

// Ключи runtime-конфига
const (
	KeyUpstreamBaseURL  = "upstreamBaseUrl"
	KeyUpstreamAPIToken = "upstreamApiToken"
)

// DefaultUpstreamBaseURL — адрес Strapi по умолчанию (локальный dev-инстанс)
const DefaultUpstreamBaseURL = "http://localhost:1337"

// Visibility определяет, можно ли отдавать значение клиенту.
type Visibility int

const (
	Public Visibility = iota
	Private
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

// Option — одна распознаваемая опция runtime-конфига.
// EnvVars перечислены в порядке приоритета: берётся первая присутствующая.
type Option struct {
	Name       string
	EnvVars    []string
	Default    string
	Visibility Visibility
}

// Options — фиксированный набор опций. Новые ключи в рантайме не добавляются.
var Options = []Option{
	{
		Name:       KeyUpstreamBaseURL,
		EnvVars:    []string{EnvStrapiAPIURL, EnvStrapiURL},
		Default:    DefaultUpstreamBaseURL,
		Visibility: Public,
	},
	{
		Name:       KeyUpstreamAPIToken,
		EnvVars:    []string{EnvStrapiAPIToken},
		Default:    "",
		Visibility: Private,
	},
}

// Environment — снимок переменных окружения.
// Ключ с пустым значением считается присутствующим.
type Environment map[string]string

// EnvironmentFromOS снимает текущее окружение процесса
func EnvironmentFromOS() Environment {
	env := make(Environment)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// Lookup возвращает значение и признак присутствия ключа
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// PublicConfig — часть конфига, доступная клиенту.
type PublicConfig struct {
	UpstreamBaseURL string `json:"upstreamBaseUrl"`
}

// RuntimeConfig — неизменяемый конфиг процесса.
// Строится один раз через Resolve и дальше только читается, поэтому безопасен
// для конкурентного чтения без блокировок. Приватные поля наружу не сериализуются.
type RuntimeConfig struct {
	public  map[string]string
	private map[string]string
}

// Resolve собирает RuntimeConfig: дефолты, поверх них значения из env, затем
// разбиение на public/private. Ошибок не бывает: отсутствие переменной — это
// дефолт, а неполноту конфига оценивает health check.
func Resolve(env Environment) RuntimeConfig {
	rc := RuntimeConfig{
		public:  make(map[string]string),
		private: make(map[string]string),
	}
	for _, opt := range Options {
		value := opt.Default
		for _, name := range opt.EnvVars {
			if v, ok := env.Lookup(name); ok {
				value = v
				break
			}
		}
		if opt.Visibility == Private {
			rc.private[opt.Name] = value
		} else {
			rc.public[opt.Name] = value
		}
	}
	return rc
}

// ResolveFromOS — Resolve по текущему окружению процесса
func ResolveFromOS() RuntimeConfig {
	return Resolve(EnvironmentFromOS())
}

// UpstreamBaseURL — базовый адрес Strapi
func (rc RuntimeConfig) UpstreamBaseURL() string {
	return rc.public[KeyUpstreamBaseURL]
}

// UpstreamAPIToken — токен доступа к Strapi (только для сервера)
func (rc RuntimeConfig) UpstreamAPIToken() string {
	return rc.private[KeyUpstreamAPIToken]
}

// PublicFields возвращает копию публичных полей
func (rc RuntimeConfig) PublicFields() map[string]string {
	return copyFields(rc.public)
}

// PrivateFields возвращает копию приватных полей
func (rc RuntimeConfig) PrivateFields() map[string]string {
	return copyFields(rc.private)
}

// Public — клиентская поверхность конфига
func (rc RuntimeConfig) Public() PublicConfig {
	return PublicConfig{UpstreamBaseURL: rc.UpstreamBaseURL()}
}

// Equal сравнивает конфиги по полям
func (rc RuntimeConfig) Equal(other RuntimeConfig) bool {
	return fieldsEqual(rc.public, other.public) && fieldsEqual(rc.private, other.private)
}

// MarshalJSON отдаёт только публичную часть.
func (rc RuntimeConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(rc.Public())
}

func (rc RuntimeConfig) String() string {
	parts := make([]string, 0, len(rc.public)+len(rc.private))
	for _, k := range sortedKeys(rc.public) {
		parts = append(parts, fmt.Sprintf("%s: %q", k, rc.public[k]))
	}
	for _, k := range sortedKeys(rc.private) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, redact(rc.private[k])))
	}
	return "RuntimeConfig{" + strings.Join(parts, ", ") + "}"
}

func (rc RuntimeConfig) GoString() string {
	return rc.String()
}

// MarshalLogObject — для zap.Object: приватные значения логируются как set/empty.
func (rc RuntimeConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, k := range sortedKeys(rc.public) {
		enc.AddString(k, rc.public[k])
	}
	for _, k := range sortedKeys(rc.private) {
		enc.AddString(k, redact(rc.private[k]))
	}
	return nil
}

type runtimeKey struct{}

// WithRuntime кладёт конфиг в контекст запроса
func WithRuntime(ctx context.Context, rc RuntimeConfig) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rc)
}

// RuntimeFromContext достаёт конфиг из контекста
func RuntimeFromContext(ctx context.Context) (RuntimeConfig, bool) {
	rc, ok := ctx.Value(runtimeKey{}).(RuntimeConfig)
	return rc, ok
}

func redact(v string) string {
	if v == "" {
		return "empty"
	}
	return "set"
}

func copyFields(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func fieldsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

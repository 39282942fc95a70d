package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/llm"
	"wanderplan/pkg/utils"
)

const (
	KeyLLMProvider   = "LLM_PROVIDER"
	KeyBailianAPIKey = "BAILIAN_API_KEY"
	KeyBailianModel  = "BAILIAN_MODEL"
	KeyOpenAIAPIKey  = "OPENAI_API_KEY"
	KeyOpenAIModel   = "OPENAI_MODEL"
	KeyOpenAIBaseURL = "OPENAI_BASE_URL"
	KeyGeminiAPIKey  = "GEMINI_API_KEY"
	KeyGeminiModel   = "GEMINI_MODEL"
	KeyTimeoutMs     = "LLM_TIMEOUT_MS"
	KeyMaxRetries    = "LLM_MAX_RETRIES"

	segmentCoeffPrefix = "BUDGET_COEFF_"
	perDayCoeffPrefix  = "BUDGET_PERDAY_"

	DefaultTimeout    = 20 * time.Second
	DefaultMaxRetries = 2
	maxStringSetting  = 256
)

var stringKeys = []string{
	KeyLLMProvider,
	KeyBailianAPIKey, KeyBailianModel,
	KeyOpenAIAPIKey, KeyOpenAIModel, KeyOpenAIBaseURL,
	KeyGeminiAPIKey, KeyGeminiModel,
}

var perDayBuckets = []string{
	response_models.SegmentAccommodation,
	response_models.SegmentFood,
	response_models.SegmentTransport,
	response_models.SegmentEntertainment,
}

// AllowedSettingKeys lists every key the settings store accepts, sorted.
func AllowedSettingKeys() []string {
	keys := append([]string{}, stringKeys...)
	keys = append(keys, KeyTimeoutMs, KeyMaxRetries)
	for _, b := range response_models.BudgetBuckets {
		keys = append(keys, segmentCoeffPrefix+strings.ToUpper(b))
	}
	for _, b := range perDayBuckets {
		keys = append(keys, perDayCoeffPrefix+strings.ToUpper(b))
	}
	sort.Strings(keys)
	return keys
}

func isAllowedKey(k string) bool {
	for _, allowed := range AllowedSettingKeys() {
		if allowed == k {
			return true
		}
	}
	return false
}

func isNumericKey(k string) bool {
	return k == KeyTimeoutMs || k == KeyMaxRetries ||
		strings.HasPrefix(k, segmentCoeffPrefix) || strings.HasPrefix(k, perDayCoeffPrefix)
}

func isSecretKey(k string) bool {
	return strings.HasSuffix(k, "_API_KEY")
}

// PlannerSettings is the resolved runtime configuration the planner works from.
type PlannerSettings struct {
	Provider   llm.ProviderConfig
	Timeout    time.Duration
	MaxRetries int
	Budget     BudgetCoefficients
}

// SettingsProvider hands out a consistent snapshot of the runtime settings.
type SettingsProvider interface {
	Current() PlannerSettings
}

type SettingsServiceInterface interface {
	SettingsProvider
	GetSettings() (map[string]interface{}, error)
	GetMaskedSettings() (map[string]interface{}, error)
	UpdateSettings(update map[string]interface{}) (map[string]interface{}, error)
}

// SettingsService persists runtime settings as a JSON document. Keys missing from the file
// fall back to the environment variable of the same name.
type SettingsService struct {
	path   string
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewSettingsService(path string, logger *zap.Logger) *SettingsService {
	if path == "" {
		path = filepath.Join("config", "local.json")
	}
	return &SettingsService{path: path, logger: logger}
}

func (s *SettingsService) Path() string { return s.path }

// load reads the file through a fresh viper instance. Env bindings are only added for keys
// the file does not define, so a persisted value always wins.
func (s *SettingsService) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("json")
	if _, err := os.Stat(s.path); err == nil {
		v.SetConfigFile(s.path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %s: %w", s.path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat settings %s: %w", s.path, err)
	}

	for _, k := range AllowedSettingKeys() {
		if !v.InConfig(k) {
			_ = v.BindEnv(k)
		}
	}
	return v, nil
}

func (s *SettingsService) fileSettings() (map[string]interface{}, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", s.path, err)
	}
	return out, nil
}

// GetSettings returns every key that currently has a value, file first then environment.
func (s *SettingsService) GetSettings() (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err := s.load()
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	for _, k := range AllowedSettingKeys() {
		if !v.IsSet(k) {
			continue
		}
		if isNumericKey(k) {
			out[k] = v.GetFloat64(k)
		} else {
			out[k] = v.GetString(k)
		}
	}
	return out, nil
}

func (s *SettingsService) GetMaskedSettings() (map[string]interface{}, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	for k, val := range settings {
		if str, ok := val.(string); ok && isSecretKey(k) {
			settings[k] = MaskSecret(str)
		}
	}
	return settings, nil
}

func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// ValidateSettingsUpdate checks a partial update. The first violation is returned as BAD_REQUEST.
func ValidateSettingsUpdate(update map[string]interface{}) error {
	keys := make([]string, 0, len(update))
	for k := range update {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !isAllowedKey(k) {
			return utils.NewBadRequestError(fmt.Sprintf("unknown key: %s", k))
		}
		val := update[k]
		if val == nil {
			continue
		}
		if isNumericKey(k) {
			n, ok := toFloat(val)
			if !ok {
				return utils.NewBadRequestError(fmt.Sprintf("key %s must be number", k))
			}
			if err := checkRange(k, n); err != nil {
				return err
			}
			continue
		}

		str, ok := val.(string)
		if !ok {
			return utils.NewBadRequestError(fmt.Sprintf("key %s must be string", k))
		}
		if len(str) > maxStringSetting {
			return utils.NewBadRequestError(fmt.Sprintf("key %s too long", k))
		}
		if k == KeyLLMProvider && !llm.IsKnownProvider(str) {
			return utils.NewBadRequestError(fmt.Sprintf("LLM_PROVIDER must be one of %s", strings.Join(llm.Providers, ", ")))
		}
	}
	return nil
}

// ParseSettingAssignment turns a KEY=VALUE pair into a single-key update. Numeric keys are
// parsed as numbers and an empty value removes the key.
func ParseSettingAssignment(pair string) (map[string]interface{}, error) {
	key, raw, ok := strings.Cut(pair, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return nil, utils.NewBadRequestError(fmt.Sprintf("expected KEY=VALUE, got %q", pair))
	}
	if !isAllowedKey(key) {
		return nil, utils.NewBadRequestError(fmt.Sprintf("unknown key: %s", key))
	}
	if raw == "" {
		return map[string]interface{}{key: nil}, nil
	}
	if !isNumericKey(key) {
		return map[string]interface{}{key: raw}, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, utils.NewBadRequestError(fmt.Sprintf("key %s must be number", key))
	}
	return map[string]interface{}{key: n}, nil
}

func checkRange(k string, n float64) error {
	switch {
	case k == KeyTimeoutMs:
		if n < 100 || n > 60000 {
			return utils.NewBadRequestError("LLM_TIMEOUT_MS must be between 100 and 60000")
		}
	case k == KeyMaxRetries:
		if n < 0 || n > 5 || n != float64(int(n)) {
			return utils.NewBadRequestError("LLM_MAX_RETRIES must be between 0 and 5")
		}
	default:
		if n < 0 || n > 10000 {
			return utils.NewBadRequestError(fmt.Sprintf("%s must be between 0 and 10000", k))
		}
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// UpdateSettings merges update into the persisted document. A nil value removes the key.
// The file is replaced atomically through a temp file and rename.
func (s *SettingsService) UpdateSettings(update map[string]interface{}) (map[string]interface{}, error) {
	if err := ValidateSettingsUpdate(update); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.fileSettings()
	if err != nil {
		return nil, err
	}
	for k, v := range update {
		if v == nil {
			delete(current, k)
			continue
		}
		if k == KeyLLMProvider {
			v = strings.ToLower(strings.TrimSpace(v.(string)))
		}
		current[k] = v
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return nil, fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return nil, fmt.Errorf("replace settings: %w", err)
	}

	if s.logger != nil {
		updated := make([]string, 0, len(update))
		for k := range update {
			updated = append(updated, k)
		}
		sort.Strings(updated)
		s.logger.Info("settings updated", zap.Strings("keys", updated), zap.String("path", s.path))
	}
	return current, nil
}

// Current resolves the planner's view of the settings. Out-of-range values that reached the
// file or the environment without validation are ignored in favour of defaults.
func (s *SettingsService) Current() PlannerSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := PlannerSettings{
		Provider:   llm.ProviderConfig{Provider: llm.ProviderBailian},
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		Budget:     DefaultBudgetCoefficients(),
	}

	v, err := s.load()
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("settings unreadable, using defaults", zap.Error(err))
		}
		return out
	}

	if p := strings.TrimSpace(v.GetString(KeyLLMProvider)); p != "" {
		out.Provider.Provider = strings.ToLower(p)
	}
	out.Provider.BailianAPIKey = v.GetString(KeyBailianAPIKey)
	out.Provider.BailianModel = v.GetString(KeyBailianModel)
	out.Provider.OpenAIAPIKey = v.GetString(KeyOpenAIAPIKey)
	out.Provider.OpenAIModel = v.GetString(KeyOpenAIModel)
	out.Provider.OpenAIBaseURL = v.GetString(KeyOpenAIBaseURL)
	out.Provider.GeminiAPIKey = v.GetString(KeyGeminiAPIKey)
	out.Provider.GeminiModel = v.GetString(KeyGeminiModel)

	if v.IsSet(KeyTimeoutMs) {
		if ms := v.GetFloat64(KeyTimeoutMs); checkRange(KeyTimeoutMs, ms) == nil {
			out.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v.IsSet(KeyMaxRetries) {
		if n := v.GetFloat64(KeyMaxRetries); checkRange(KeyMaxRetries, n) == nil {
			out.MaxRetries = int(n)
		}
	}
	for _, b := range response_models.BudgetBuckets {
		applyCoefficient(v, segmentCoeffPrefix+strings.ToUpper(b), b, out.Budget.Segment)
	}
	for _, b := range perDayBuckets {
		applyCoefficient(v, perDayCoeffPrefix+strings.ToUpper(b), b, out.Budget.PerDay)
	}
	return out
}

func applyCoefficient(v *viper.Viper, key, bucket string, into map[string]float64) {
	if !v.IsSet(key) {
		return
	}
	if n := v.GetFloat64(key); checkRange(key, n) == nil {
		into[bucket] = n
	}
}

// StaticSettings is a fixed SettingsProvider, handy for the CLI and for tests.
type StaticSettings PlannerSettings

func (s StaticSettings) Current() PlannerSettings { return PlannerSettings(s) }

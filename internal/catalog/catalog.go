package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Champion holds the metadata needed to resolve a numeric champion key
type Champion struct {
	ID   string // canonical id, e.g. "Ahri", "MonkeyKing"
	Name string // display name, e.g. "Ahri", "Wukong"
	Key  int    // stable numeric key
}

// rawChampion matches one entry of Data Dragon's champion.json
type rawChampion struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Catalog maps numeric champion keys to champion metadata. It is loaded
// lazily from Data Dragon and refreshed at most once per process; a failed
// refresh keeps serving the previous snapshot.
type Catalog struct {
	mu        sync.RWMutex
	champions map[int]Champion
	version   string
	loaded    bool
	refreshed bool

	httpClient *http.Client
	baseURL    string
	store      *Store
	logger     *zap.Logger
}

// Option configures a Catalog
type Option func(*Catalog)

// WithBaseURL overrides the Data Dragon base URL (used by tests)
func WithBaseURL(url string) Option {
	return func(c *Catalog) { c.baseURL = url }
}

// WithStore attaches an on-disk snapshot cache
func WithStore(s *Store) Option {
	return func(c *Catalog) { c.store = s }
}

// New creates an empty catalog
func New(logger *zap.Logger, opts ...Option) *Catalog {
	c := &Catalog{
		champions:  make(map[int]Champion),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://ddragon.leagueoflegends.com",
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the current champion list from Data Dragon. On failure it
// falls back to the on-disk snapshot, if one exists.
func (c *Catalog) Load() error {
	champions, version, err := c.fetch()
	if err != nil {
		if c.restoreSnapshot() {
			c.logger.Warn("champion feed unreachable, serving cached snapshot", zap.Error(err))
			return nil
		}
		return err
	}

	c.install(champions, version)

	if c.store != nil {
		if err := c.store.Save(version, champions); err != nil {
			c.logger.Warn("failed to persist champion snapshot", zap.Error(err))
		}
	}

	c.logger.Info("loaded champion catalog",
		zap.Int("champions", len(champions)),
		zap.String("version", version))
	return nil
}

// Refresh re-fetches the champion list. Only the first call per process does
// anything; a failed refresh keeps the previous snapshot.
func (c *Catalog) Refresh() error {
	c.mu.Lock()
	if c.refreshed {
		c.mu.Unlock()
		return nil
	}
	c.refreshed = true
	c.mu.Unlock()

	champions, version, err := c.fetch()
	if err != nil {
		c.logger.Warn("champion refresh failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	c.install(champions, version)
	if c.store != nil {
		if err := c.store.Save(version, champions); err != nil {
			c.logger.Warn("failed to persist champion snapshot", zap.Error(err))
		}
	}
	return nil
}

// fetch downloads the version list and champion data from Data Dragon
func (c *Catalog) fetch() (map[int]Champion, string, error) {
	versionsResp, err := c.httpClient.Get(c.baseURL + "/api/versions.json")
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch versions: %w", err)
	}
	defer versionsResp.Body.Close()

	var versions []string
	if err := json.NewDecoder(versionsResp.Body).Decode(&versions); err != nil {
		return nil, "", fmt.Errorf("failed to parse versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, "", fmt.Errorf("no versions available")
	}
	latest := versions[0]

	champURL := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.baseURL, latest)
	champResp, err := c.httpClient.Get(champURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch champions: %w", err)
	}
	defer champResp.Body.Close()

	var payload struct {
		Data map[string]rawChampion `json:"data"`
	}
	if err := json.NewDecoder(champResp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("failed to parse champions: %w", err)
	}

	champions := make(map[int]Champion, len(payload.Data))
	for id, champ := range payload.Data {
		key, err := strconv.Atoi(champ.Key)
		if err != nil {
			continue
		}
		champions[key] = Champion{ID: id, Name: champ.Name, Key: key}
	}
	return champions, latest, nil
}

// install swaps in a new snapshot
func (c *Catalog) install(champions map[int]Champion, version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.champions = champions
	c.version = version
	c.loaded = true
}

// restoreSnapshot loads the last persisted snapshot from the store
func (c *Catalog) restoreSnapshot() bool {
	if c.store == nil {
		return false
	}
	champions, version, err := c.store.LoadLatest()
	if err != nil || len(champions) == 0 {
		return false
	}
	c.install(champions, version)
	return true
}

// Resolve returns the champion for a numeric key
func (c *Catalog) Resolve(key int) (Champion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	champ, ok := c.champions[key]
	return champ, ok
}

// IsLoaded reports whether a snapshot is available
func (c *Catalog) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Version returns the Data Dragon version of the current snapshot
func (c *Catalog) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

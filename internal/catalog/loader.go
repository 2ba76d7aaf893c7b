package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"leak-diagnostic/internal/common/database"
	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/httpx"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/models"
)

const cacheKey = "catalog:questions"

// Loader fetches the question catalog from the scoring backend (through
// the relay) and caches it in redis plus in-process for the life of the
// daemon. Cache failures degrade to an origin fetch, never a load error.
type Loader struct {
	baseURL string
	client  *httpx.Client
	cache   *database.RedisClient
	ttl     time.Duration
	log     logger.Logger

	mu     sync.Mutex
	loaded *Catalog
}

type LoaderOptions struct {
	BaseURL  string
	Client   *httpx.Client
	Cache    *database.RedisClient // optional
	CacheTTL time.Duration
	Logger   logger.Logger
}

func NewLoader(opts LoaderOptions) *Loader {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	client := opts.Client
	if client == nil {
		client = httpx.NewClient(30 * time.Second)
	}
	return &Loader{
		baseURL: opts.BaseURL,
		client:  client,
		cache:   opts.Cache,
		ttl:     opts.CacheTTL,
		log:     log,
	}
}

// Load returns the catalog, preferring in-process, then redis, then the
// origin. The in-process copy lives for the remainder of the process.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded != nil {
		return l.loaded, nil
	}

	if cat := l.fromCache(ctx); cat != nil {
		l.loaded = cat
		return cat, nil
	}

	questions, err := l.fetchOrigin(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := New(questions)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog payload: %w", err)
	}

	l.storeCache(ctx, questions)
	l.loaded = cat

	l.log.Info("question catalog loaded", map[string]interface{}{
		"questions": cat.Len(),
	})
	return cat, nil
}

func (l *Loader) fromCache(ctx context.Context) *Catalog {
	if l.cache == nil {
		return nil
	}
	raw, err := l.cache.Get(ctx, cacheKey)
	if err != nil {
		return nil
	}
	var questions []models.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		l.log.Warn("discarding unreadable cached catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	cat, err := New(questions)
	if err != nil {
		return nil
	}
	return cat
}

func (l *Loader) storeCache(ctx context.Context, questions []models.Question) {
	if l.cache == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, cacheKey, string(raw), l.ttl); err != nil {
		l.log.Warn("catalog cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (l *Loader) fetchOrigin(ctx context.Context) ([]models.Question, error) {
	url := l.baseURL + "?action=getQuizQuestions"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError("catalog", err)
	}

	resp, err := l.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewNetworkError("catalog", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("catalog", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNetworkError("catalog", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var questions []models.Question
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, errors.NewNetworkError("catalog", fmt.Errorf("malformed catalog payload: %w", err))
	}
	return questions, nil
}

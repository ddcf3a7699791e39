package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	repo "github.com/oksasatya/catalog-favorites/internal/domain/repository"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 50
)

// ProductIndexMapping is the Elasticsearch mapping of the products index.
const ProductIndexMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "name":         {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":  {"type": "text"},
      "category":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "price":        {"type": "double"},
      "image_url":    {"type": "keyword", "index": false},
      "is_available": {"type": "boolean"}
    }
  }
}`

type CatalogService struct {
	Repo     repo.ProductRepository
	Redis    *redis.Client
	CacheTTL time.Duration
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewCatalogService(products repo.ProductRepository, rdb *redis.Client, ttl time.Duration, es *elasticsearch.Client, index string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Repo: products, Redis: rdb, CacheTTL: ttl, ES: es, ESIndex: index, Logger: logger}
}

func productKey(id string) string {
	return "product:" + id
}

// GetProduct reads through the Redis cache when one is configured.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if s.Redis != nil {
		var cached entity.Product
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, productKey(id), &cached)
		if err != nil {
			s.warn(err, "product cache read failed", id)
		} else if ok {
			return &cached, nil
		}
	}

	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, productKey(id), p, s.CacheTTL); err != nil {
			s.warn(err, "product cache write failed", id)
		}
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return nonNil(s.Repo.List(ctx))
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]entity.Product, error) {
	return nonNil(s.Repo.ListAvailable(ctx))
}

// TopExpensive returns the most expensive products; limit is clamped to 1..50.
func (s *CatalogService) TopExpensive(ctx context.Context, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	return nonNil(s.Repo.TopExpensive(ctx, limit))
}

// Search uses Elasticsearch when configured and falls back to the store's
// substring match when it is not, or when the search request fails.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]entity.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Product{}, nil
	}
	if size <= 0 || size > maxTopLimit {
		size = defaultTopLimit
	}

	if s.ES != nil && s.ESIndex != "" {
		out, err := s.searchES(ctx, q, size)
		if err == nil {
			return out, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("q", q).Warn("es search failed, using store")
		}
	}

	out, err := nonNil(s.Repo.Search(ctx, q))
	if err != nil {
		return nil, err
	}
	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

func (s *CatalogService) searchES(ctx context.Context, q string, size int) ([]entity.Product, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "category^2", "description"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source entity.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p := h.Source
		if p.ID == "" {
			p.ID = h.ID
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveProduct stores p, drops its cached copy and refreshes the search index.
// Index failures are logged only; the store stays authoritative.
func (s *CatalogService) SaveProduct(ctx context.Context, p *entity.Product) error {
	if err := s.Repo.Save(ctx, p); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, productKey(p.ID)); err != nil {
			s.warn(err, "product cache invalidation failed", p.ID)
		}
	}
	if err := s.IndexProduct(ctx, p); err != nil {
		s.warn(err, "product not indexed", p.ID)
	}
	return nil
}

// IndexProduct upserts p into the search index. A nil client is a no-op.
func (s *CatalogService) IndexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESIndex == "" || p == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.warn(err, "es index failed", p.ID)
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", p.ID, res.Status())
	}
	return nil
}

// EnsureIndex creates the products index if missing.
func (s *CatalogService) EnsureIndex(ctx context.Context) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	return helpers.EnsureIndex(ctx, s.ES, s.ESIndex, ProductIndexMapping)
}

func (s *CatalogService) warn(err error, msg, productID string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", productID).Warn(msg)
	}
}

func nonNil(products []entity.Product, err error) ([]entity.Product, error) {
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

package services

import (
	"context"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/client/events"
	"github.com/dmitrijs2005/spabook/internal/client/models"
	"github.com/dmitrijs2005/spabook/internal/client/search"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

const (
	servicesCacheKey = "services"
	faqsCacheKey     = "faqs"

	defaultCatalogTTL = 5 * time.Minute
)

// CatalogService serves the service catalog and the FAQ list from a TTL
// cache and runs the local search over them.
type CatalogService struct {
	client client.Client
	cache  *cache.Cache
	log    logging.Logger
}

func NewCatalogService(c client.Client, ttl time.Duration, log logging.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &CatalogService{
		client: c,
		cache:  cache.New(ttl, 2*ttl),
		log:    log,
	}
}

// Services returns the active catalog items. Inactive ones are never shown
// and are dropped before caching.
func (s *CatalogService) Services(ctx context.Context) ([]models.CatalogItem, error) {
	if v, ok := s.cache.Get(servicesCacheKey); ok {
		return slices.Clone(v.([]models.CatalogItem)), nil
	}

	items, err := s.client.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	items = slices.DeleteFunc(slices.Clone(items), func(it models.CatalogItem) bool {
		return !it.IsActive
	})

	s.cache.Set(servicesCacheKey, items, cache.DefaultExpiration)
	s.log.Debug(ctx, "catalog loaded", "services", len(items))
	return slices.Clone(items), nil
}

// FAQs returns the FAQ list. Callers get their own copy of the cached slice.
func (s *CatalogService) FAQs(ctx context.Context) ([]models.FAQ, error) {
	if v, ok := s.cache.Get(faqsCacheKey); ok {
		return slices.Clone(v.([]models.FAQ)), nil
	}

	items, err := s.client.ListFAQs(ctx)
	if err != nil {
		return nil, err
	}

	items = slices.Clone(items)
	s.cache.Set(faqsCacheKey, items, cache.DefaultExpiration)
	s.log.Debug(ctx, "faqs loaded", "faqs", len(items))
	return slices.Clone(items), nil
}

// SearchServices shows nothing until the user types or picks a category.
func (s *CatalogService) SearchServices(ctx context.Context, q search.Query) ([]models.CatalogItem, error) {
	items, err := s.Services(ctx)
	if err != nil {
		return nil, err
	}
	return search.Catalog(items, q), nil
}

// SearchFAQs shows every entry for an empty query.
func (s *CatalogService) SearchFAQs(ctx context.Context, q search.Query) ([]models.FAQ, error) {
	items, err := s.FAQs(ctx)
	if err != nil {
		return nil, err
	}
	return search.FAQs(items, q), nil
}

// Invalidate forgets the cached lists. The next read goes to the API.
func (s *CatalogService) Invalidate() {
	s.cache.Flush()
}

// Watch invalidates the cache when a catalog refresh is requested or the
// application state is reinitialised. The returned func unsubscribes.
func (s *CatalogService) Watch(bus *events.Bus) (stop func()) {
	unsubRefresh := bus.Subscribe(events.TopicDataRefresh, func(ctx context.Context, e events.Event) {
		resources, _ := e.Payload.([]string)
		if slices.Contains(resources, events.ResourceCatalog) {
			s.log.Debug(ctx, "catalog refresh requested")
			s.Invalidate()
		}
	})
	unsubReload := bus.Subscribe(events.TopicSessionReloaded, func(context.Context, events.Event) {
		s.Invalidate()
	})
	return func() {
		unsubRefresh()
		unsubReload()
	}
}

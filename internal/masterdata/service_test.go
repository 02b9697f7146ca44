package masterdata

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Yellow Gold":    "yellow-gold",
		"  22K  ":        "22k",
		"VVS1 / EF":      "vvs1--ef",
		"Rosé":           "ros",
		"--Bestseller--": "bestseller",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResolveSlug(t *testing.T) {
	t.Run("explicitWins", func(t *testing.T) {
		slug, err := resolveSlug("custom-slug", "Some Name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slug != "custom-slug" {
			t.Fatalf("expected explicit slug, got %q", slug)
		}
	})

	t.Run("derivedFromName", func(t *testing.T) {
		slug, err := resolveSlug("", "White Gold")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slug != "white-gold" {
			t.Fatalf("expected derived slug, got %q", slug)
		}
	})

	t.Run("emptyRejected", func(t *testing.T) {
		_, err := resolveSlug("", "   ")
		if err == nil {
			t.Fatal("expected validation error")
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %v", err)
		}
	})
}

func TestValidateFineness(t *testing.T) {
	if err := validateFineness(91.667); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := validateFineness(0); err == nil {
		t.Fatal("expected validation error for zero fineness")
	}
	if err := validateFineness(101); err == nil {
		t.Fatal("expected validation error for fineness above 100")
	}
}

type fakeListCache struct {
	store map[string]string
	dels  []string
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{store: map[string]string{}}
}

func (f *fakeListCache) Get(_ context.Context, key string) (string, error) {
	if value, ok := f.store[key]; ok {
		return value, nil
	}
	return "", errCacheMiss
}

func (f *fakeListCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.store[key] = value.(string)
	return nil
}

func (f *fakeListCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
		f.dels = append(f.dels, key)
	}
	return nil
}

func (f *fakeListCache) CacheKey(parts ...string) string {
	key := "cache"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

var errCacheMiss = pkgerrors.New(pkgerrors.CodeNotFound, "cache miss")

func TestFirstPageCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newFakeListCache()

	result := &ListResult[TagDTO]{Items: []TagDTO{{Name: "Bridal", Slug: "bridal"}}}
	storeFirstPage(ctx, cache, entityTags, pagination.Params{}, time.Minute, result)

	cached, ok := firstPageFromCache[TagDTO](ctx, cache, entityTags, pagination.Params{})
	if !ok {
		t.Fatal("expected cache hit for default params")
	}
	if len(cached.Items) != 1 || cached.Items[0].Slug != "bridal" {
		t.Fatalf("unexpected cached payload %+v", cached)
	}
}

func TestFirstPageCacheSkipsNonDefaultParams(t *testing.T) {
	ctx := context.Background()
	cache := newFakeListCache()

	result := &ListResult[TagDTO]{Items: []TagDTO{{Slug: "bridal"}}}
	storeFirstPage(ctx, cache, entityTags, pagination.Params{Limit: 50}, time.Minute, result)
	if len(cache.store) != 0 {
		t.Fatal("non-default params must not be cached")
	}

	storeFirstPage(ctx, cache, entityTags, pagination.Params{}, time.Minute, result)
	if _, ok := firstPageFromCache[TagDTO](ctx, cache, entityTags, pagination.Params{Cursor: "abc"}); ok {
		t.Fatal("cursor requests must bypass the cache")
	}
}

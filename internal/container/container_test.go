package container

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/weavekit/weavekit/internal/manifest"
	"github.com/weavekit/weavekit/internal/marker"
)

type database struct{}

type cache struct {
	db *database
}

type service struct {
	db    *database
	cache *cache
}

func desc(label, name string, kind marker.Kind) *manifest.Descriptor {
	return &manifest.Descriptor{
		TypeLabel:   label,
		Marker:      kind,
		Category:    kind.Category(),
		Name:        name,
		Constructor: "New" + label,
		Enabled:     true,
	}
}

func mustRegister(t *testing.T, c *Context, d *manifest.Descriptor, ctor any) {
	t.Helper()
	require.NoError(t, c.RegisterComponent(d, reflect.ValueOf(ctor)))
}

func TestStart_DependencyOrdering(t *testing.T) {
	t.Parallel()

	var order []string
	c := New()

	mustRegister(t, c, desc("Service", "service", marker.Service), func(db *database, ch *cache) *service {
		order = append(order, "service")
		return &service{db: db, cache: ch}
	})
	mustRegister(t, c, desc("Cache", "cache", marker.Service), func(db *database) *cache {
		order = append(order, "cache")
		return &cache{db: db}
	})
	mustRegister(t, c, desc("Database", "database", marker.Service), func() *database {
		order = append(order, "database")
		return &database{}
	})

	require.NoError(t, c.Start(context.Background()))

	// Every dependency is fully instantiated before its dependent's
	// constructor runs.
	require.Equal(t, []string{"database", "cache", "service"}, order)
	require.True(t, c.Started())
}

func TestStart_MemoizesSingletons(t *testing.T) {
	t.Parallel()

	calls := 0
	c := New()

	mustRegister(t, c, desc("Database", "database", marker.Service), func() *database {
		calls++
		return &database{}
	})
	mustRegister(t, c, desc("Cache", "cache", marker.Service), func(db *database) *cache {
		return &cache{db: db}
	})
	mustRegister(t, c, desc("Service", "service", marker.Service), func(db *database, ch *cache) *service {
		return &service{db: db, cache: ch}
	})

	require.NoError(t, c.Start(context.Background()))
	require.Equal(t, 1, calls, "shared dependency constructed exactly once")

	svc, err := Bean[*service](c)
	require.NoError(t, err)
	ch, err := Bean[*cache](c)
	require.NoError(t, err)
	require.Same(t, svc.db, ch.db)
}

type alpha struct{}
type beta struct{}

func TestStart_CircularDependency(t *testing.T) {
	t.Parallel()

	c := New()
	mustRegister(t, c, desc("Alpha", "alpha", marker.Service), func(b *beta) *alpha { return &alpha{} })
	mustRegister(t, c, desc("Beta", "beta", marker.Service), func(a *alpha) *beta { return &beta{} })

	err := c.Start(context.Background())
	require.ErrorIs(t, err, ErrCircularDependency)
	require.Contains(t, err.Error(), "->", "error names the full cycle chain")
	require.Contains(t, err.Error(), "container.alpha")
	require.Contains(t, err.Error(), "container.beta")
}

func TestStart_UnresolvedDependency(t *testing.T) {
	t.Parallel()

	c := New()
	mustRegister(t, c, desc("Cache", "cache", marker.Service), func(db *database) *cache {
		return &cache{db: db}
	})

	err := c.Start(context.Background())
	require.ErrorIs(t, err, ErrUnresolvedDependency)
}

func TestStart_ConstructorFailureIsFatal(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := New()
	mustRegister(t, c, desc("Database", "database", marker.Service), func() (*database, error) {
		return nil, boom
	})

	err := c.Start(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestGetBean(t *testing.T) {
	t.Parallel()

	c := New()
	mustRegister(t, c, desc("Database", "database", marker.Service), func() *database { return &database{} })
	require.NoError(t, c.Start(context.Background()))

	byType, err := c.GetBean(reflect.TypeOf(&database{}))
	require.NoError(t, err)
	byName, err := c.GetBeanNamed("database")
	require.NoError(t, err)
	require.Same(t, byType, byName)

	_, err = c.GetBean(reflect.TypeOf(&cache{}))
	require.ErrorIs(t, err, ErrBeanNotFound)

	_, err = c.GetBeanNamed("nope")
	require.ErrorIs(t, err, ErrBeanNotFound)
}

func TestRegisterFactory_MemoizedLazily(t *testing.T) {
	t.Parallel()

	var calls int
	var mu sync.Mutex

	c := New()
	require.NoError(t, c.RegisterFactory(func() *database {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return &database{}
	}))

	// Factories are not eagerly instantiated by Start.
	require.NoError(t, c.Start(context.Background()))
	mu.Lock()
	require.Equal(t, 0, calls)
	mu.Unlock()

	// The supplier fires at most once even under concurrent first lookups.
	var wg sync.WaitGroup
	results := make([]any, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inst, err := Bean[*database](c)
			require.NoError(t, err)
			results[i] = inst
		}(i)
	}
	wg.Wait()

	mu.Lock()
	require.Equal(t, 1, calls)
	mu.Unlock()
	for _, r := range results[1:] {
		require.Same(t, results[0], r)
	}
}

type notifier interface {
	Notify() string
}

type emailNotifier struct{}

func (n *emailNotifier) Notify() string { return "email" }

func TestRegisterSingleton(t *testing.T) {
	t.Parallel()

	c := New()
	db := &database{}
	require.NoError(t, c.RegisterSingleton(db))
	require.NoError(t, c.RegisterSingletonAs(reflect.TypeOf((*notifier)(nil)).Elem(), &emailNotifier{}))

	// Registered values resolve as dependencies without constructors.
	mustRegister(t, c, desc("Cache", "cache", marker.Service), func(db *database, n notifier) *cache {
		return &cache{db: db}
	})
	require.NoError(t, c.Start(context.Background()))

	got, err := Bean[*database](c)
	require.NoError(t, err)
	require.Same(t, db, got)

	n, err := Bean[notifier](c)
	require.NoError(t, err)
	require.Equal(t, "email", n.Notify())
}

func TestRegister_Duplicates(t *testing.T) {
	t.Parallel()

	c := New()
	mustRegister(t, c, desc("Database", "database", marker.Service), func() *database { return &database{} })

	err := c.RegisterComponent(desc("Database2", "other", marker.Service), reflect.ValueOf(func() *database { return &database{} }))
	require.ErrorIs(t, err, ErrDuplicateBean, "duplicate output type")

	err = c.RegisterComponent(desc("Cache", "database", marker.Service), reflect.ValueOf(func() *cache { return &cache{} }))
	require.ErrorIs(t, err, ErrDuplicateBean, "duplicate bean name")
}

func TestRegister_AfterStart(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.Start(context.Background()))

	require.ErrorIs(t, c.RegisterFactory(func() *database { return &database{} }), ErrContextStarted)
	require.ErrorIs(t, c.RegisterSingleton(&database{}), ErrContextStarted)
	require.ErrorIs(t, c.Start(context.Background()), ErrContextStarted)
}

type configured struct {
	endpoint string
}

func TestResolve_SettingsAreContextual(t *testing.T) {
	t.Parallel()

	d := desc("Configured", "configured", marker.Service)
	d.Settings = manifest.Settings{"endpoint": cty.StringVal("https://example.test")}

	c := New()
	mustRegister(t, c, d, func(settings manifest.Settings) *configured {
		endpoint, _ := settings.String("endpoint")
		return &configured{endpoint: endpoint}
	})
	require.NoError(t, c.Start(context.Background()))

	got, err := Bean[*configured](c)
	require.NoError(t, err)
	require.Equal(t, "https://example.test", got.endpoint)
}

func TestBeans_StateTracking(t *testing.T) {
	t.Parallel()

	c := New()
	mustRegister(t, c, desc("Database", "database", marker.Storage), func() *database { return &database{} })
	require.NoError(t, c.Start(context.Background()))

	infos := c.Beans()
	require.Len(t, infos, 1)
	require.Equal(t, "instantiated", infos[0].State)
	require.Equal(t, "database", infos[0].Name)
	require.Equal(t, "storage", infos[0].Category)

	c.MarkRegistered("storage", "database")
	require.Equal(t, "registered", c.Beans()[0].State)
}

type vectorStore struct{}

func TestNamedLookup_ScopedByCategory(t *testing.T) {
	t.Parallel()

	c := New()
	mustRegister(t, c, desc("DefaultChat", "default", marker.LLM), func() *database { return &database{} })
	mustRegister(t, c, desc("DefaultStore", "default", marker.Storage), func() *vectorStore { return &vectorStore{} })
	require.NoError(t, c.Start(context.Background()))

	chat, err := c.GetBeanIn("llm", "default")
	require.NoError(t, err)
	require.IsType(t, &database{}, chat)

	store, err := c.GetBeanIn("storage", "default")
	require.NoError(t, err)
	require.IsType(t, &vectorStore{}, store)

	_, err = c.GetBeanIn("embedding", "default")
	require.ErrorIs(t, err, ErrBeanNotFound)

	// The bare name now matches two categories.
	_, err = c.GetBeanNamed("default")
	require.ErrorIs(t, err, ErrAmbiguousName)
}

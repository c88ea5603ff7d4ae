package urlgen_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

func TestTable_Resolve(t *testing.T) {
	t.Parallel()

	table := urlgen.NewTable().MustAdd("foo", "/foo")

	def, err := table.Resolve("foo")
	require.NoError(t, err)
	require.Equal(t, "/foo", def.Pattern())

	_, err = table.Resolve("missing")
	require.ErrorIs(t, err, urlgen.ErrRouteNotFound)
	require.True(t, urlgen.IsRouteNotFound(err))
	require.EqualError(t, err, "Route [missing] not defined.")

	var nf *urlgen.RouteNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "missing", nf.Name)
}

func TestTable_Add(t *testing.T) {
	t.Parallel()

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		table := urlgen.NewTable()
		require.NoError(t, table.Add("foo", "/foo"))
		require.ErrorIs(t, table.Add("foo", "/bar"), urlgen.ErrDuplicateRoute)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		require.Error(t, urlgen.NewTable().Add("", "/foo"))
	})

	t.Run("invalid pattern names the route", func(t *testing.T) {
		t.Parallel()

		err := urlgen.NewTable().Add("users.show", "/users/{id")
		require.ErrorIs(t, err, urlgen.ErrInvalidPattern)
		require.Contains(t, err.Error(), "users.show")
	})

	t.Run("frozen", func(t *testing.T) {
		t.Parallel()

		table := urlgen.NewTable().MustAdd("foo", "/foo")
		table.Freeze()
		table.Freeze()

		require.True(t, table.Frozen())
		require.ErrorIs(t, table.Add("bar", "/bar"), urlgen.ErrTableFrozen)
		require.True(t, table.Has("foo"))
		require.False(t, table.Has("bar"))
	})

	t.Run("must add panics", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() {
			urlgen.NewTable().MustAdd("a", "/a").MustAdd("a", "/a")
		})
	})
}

func TestTable_Listing(t *testing.T) {
	t.Parallel()

	table := urlgen.NewTable().
		MustAdd("posts.show", "/posts/{id}").
		MustAdd("home", "/").
		MustAdd("about", "/about")

	require.Equal(t, 3, table.Len())
	require.Equal(t, []string{"about", "home", "posts.show"}, table.Names())

	routes := table.Routes()
	require.Len(t, routes, 3)
	require.Equal(t, "posts.show", routes[2].Name)
	require.Equal(t, []string{"id"}, routes[2].Definition.Parameters())
}

func TestTable_ConcurrentReadsAfterFreeze(t *testing.T) {
	t.Parallel()

	table := urlgen.NewTable()
	for i := range 50 {
		table.MustAdd(fmt.Sprintf("route.%d", i), fmt.Sprintf("/r/%d/{id}", i))
	}
	table.Freeze()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := table.Resolve(fmt.Sprintf("route.%d", i))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

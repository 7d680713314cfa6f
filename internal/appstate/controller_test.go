package appstate_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskart/campuskart/internal/appstate"
	"github.com/campuskart/campuskart/pkg/logger"
	domain "github.com/campuskart/campuskart/pkg/types"
)

func TestController_InitialState(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())

	assert.Nil(t, c.Selected())
	assert.Equal(t, domain.ViewProducts, c.ActiveView())
	assert.Equal(t, uint64(0), c.RefreshToken())
}

func TestController_SelectionReplacedWholesale(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())

	bike := &domain.Product{ID: "p1", Title: "Bike"}
	desk := &domain.Product{ID: "p2", Title: "Desk"}

	c.SelectProduct(bike)
	assert.Equal(t, "p1", c.Selected().ID)

	// No stacking: selecting another product replaces the prior focus.
	c.SelectProduct(desk)
	assert.Equal(t, "p2", c.Selected().ID)

	c.ClearSelection()
	assert.Nil(t, c.Selected())
}

func TestController_ApplyUpdatedProduct_MatchingFocus(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())
	c.SelectProduct(&domain.Product{ID: "p1", Title: "Bike", Status: domain.StatusAvailable})

	c.ApplyUpdatedProduct(&domain.Product{ID: "p1", Title: "Bike", Status: domain.StatusSold})

	// Open detail view reflects the new status without a refetch.
	require.NotNil(t, c.Selected())
	assert.Equal(t, domain.StatusSold, c.Selected().Status)
	assert.Equal(t, uint64(1), c.RefreshToken())
}

func TestController_ApplyUpdatedProduct_NonMatchingFocus(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())
	c.SelectProduct(&domain.Product{ID: "p1", Status: domain.StatusAvailable})

	c.ApplyUpdatedProduct(&domain.Product{ID: "p2", Status: domain.StatusSold})

	// Focus untouched, but the token still bumps.
	assert.Equal(t, "p1", c.Selected().ID)
	assert.Equal(t, domain.StatusAvailable, c.Selected().Status)
	assert.Equal(t, uint64(1), c.RefreshToken())
}

func TestController_ApplyUpdatedProduct_NoFocus(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())

	// A mutation completing after the detail view was dismissed is a
	// no-op on focus but still invalidates listings.
	c.ApplyUpdatedProduct(&domain.Product{ID: "p1", Status: domain.StatusSold})

	assert.Nil(t, c.Selected())
	assert.Equal(t, uint64(1), c.RefreshToken())
}

func TestController_RefreshTokenMonotonic(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())

	var seen []uint64
	var mu sync.Mutex
	c.OnRefresh(func(token uint64) {
		mu.Lock()
		seen = append(seen, token)
		mu.Unlock()
	})

	last := c.RefreshToken()
	for range 5 {
		c.BumpRefresh()
		cur := c.RefreshToken()
		assert.Greater(t, cur, last)
		last = cur
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, seen)
}

func TestController_ConcurrentCompletions(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())

	// Two different products' mutations completing in either order:
	// whichever runs second still triggers a superseding refetch.
	var wg sync.WaitGroup
	for _, id := range []string{"pA", "pB"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ApplyUpdatedProduct(&domain.Product{ID: id, Status: domain.StatusSold})
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(2), c.RefreshToken())
}

func TestController_SetActiveView(t *testing.T) {
	t.Parallel()

	c := appstate.New(logger.Discard())
	c.SetActiveView(domain.ViewMessages)
	assert.Equal(t, domain.ViewMessages, c.ActiveView())
}

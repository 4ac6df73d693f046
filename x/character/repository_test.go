package character

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/internal/testutil"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	repo := NewRepository(db)

	first, err := repo.Create(ctx, core.Character{Name: "Aria", Server: server, Owner: ptr(alice)})
	if !assert.NoError(t, err) {
		return
	}
	assert.NotZero(t, first.ID)

	// one character per user per server
	_, err = repo.Create(ctx, core.Character{Name: "Brom", Server: server, Owner: ptr(alice)})
	assert.ErrorIs(t, err, core.ErrorConflict{})

	// any number of unclaimed and DM characters
	second, err := repo.Create(ctx, core.Character{Name: "Brom", Server: server})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, core.Character{Name: "Cultist", Server: server, Owner: ptr(core.OwnerDM)})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, core.Character{Name: "Dragon", Server: server, Owner: ptr(core.OwnerDM)})
	assert.NoError(t, err)

	all, err := repo.ListByServer(ctx, server, true)
	if assert.NoError(t, err) && assert.Len(t, all, 4) {
		assert.Equal(t, "Aria", all[0].Name)
		assert.Equal(t, "Dragon", all[3].Name)
	}

	visible, err := repo.ListByServer(ctx, server, false)
	if assert.NoError(t, err) {
		assert.Len(t, visible, 2)
	}

	// claiming the second character releases the first in the same write
	second.Owner = ptr(alice)
	_, err = repo.Update(ctx, second, nil, true)
	assert.NoError(t, err)

	reloaded, err := repo.Get(ctx, first.ID)
	if assert.NoError(t, err) {
		assert.True(t, reloaded.IsUnowned())
	}

	mine, err := repo.FindByOwner(ctx, server, alice)
	if assert.NoError(t, err) {
		assert.Equal(t, second.ID, mine.ID)
	}

	// stale expected owner
	first.Owner = ptr(bob)
	_, err = repo.Update(ctx, first, ptr(alice), false)
	assert.ErrorIs(t, err, core.ErrorConflict{})

	_, err = repo.Get(ctx, 99999)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	count, err := repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(4), count)
	}
}

func TestRepositoryConcurrentClaim(t *testing.T) {
	ctx := context.Background()

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	repo := NewRepository(db)

	a, err := repo.Create(ctx, core.Character{Name: "A", Server: server})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, core.Character{Name: "B", Server: server})
	assert.NoError(t, err)

	// the same character claimed by two users at once
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, owner := range []string{alice, bob} {
		wg.Add(1)
		go func(i int, owner string) {
			defer wg.Done()
			claim := a
			claim.Owner = ptr(owner)
			_, errs[i] = repo.Update(ctx, claim, nil, true)
		}(i, owner)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, core.ErrorConflict{})
		}
	}
	assert.Equal(t, 1, succeeded)

	// one user claiming two characters at once
	c, err := repo.Create(ctx, core.Character{Name: "C", Server: "43"})
	assert.NoError(t, err)
	d, err := repo.Create(ctx, core.Character{Name: "D", Server: "43"})
	assert.NoError(t, err)

	for i, target := range []core.Character{c, d} {
		wg.Add(1)
		go func(i int, target core.Character) {
			defer wg.Done()
			target.Owner = ptr(alice)
			_, errs[i] = repo.Update(ctx, target, nil, true)
		}(i, target)
	}
	wg.Wait()

	owned, err := repo.ListByServer(ctx, "43", true)
	if assert.NoError(t, err) {
		claimed := 0
		for _, character := range owned {
			if character.IsOwnedBy(alice) {
				claimed++
			}
		}
		assert.Equal(t, 1, claimed)
	}
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeQueryKey(t *testing.T) {
	a := RecipeQuery{Category: " Makanan ", Page: 2}
	b := RecipeQuery{Page: 2, Category: "makanan"}
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "recipes?category=makanan&page=2", a.Key())

	assert.NotEqual(t, a.Key(), RecipeQuery{Category: "makanan", Page: 3}.Key())
	assert.Equal(t, "recipes?", RecipeQuery{Page: -1}.Key())
}

func TestResult(t *testing.T) {
	ok := Ok(42)
	v, isOk := ok.Value()
	assert.True(t, isOk)
	assert.Equal(t, 42, v)
	assert.Empty(t, ok.Message())

	failed := Err[int]("boom")
	assert.False(t, failed.IsOk())
	assert.Equal(t, "boom", failed.Message())
	assert.Equal(t, "request failed", Err[string]("").Message())
}

func TestPagination(t *testing.T) {
	var none *Pagination
	assert.False(t, none.HasNext())
	p := &Pagination{Page: 1, TotalPages: 3}
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestNotFoundResult(t *testing.T) {
	r := NotFound[int]("recipe not found")
	assert.False(t, r.IsOk())
	assert.True(t, r.IsNotFound())
	assert.False(t, Err[int]("x").IsNotFound())
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/repair-workshop/internal/model"
)

func TestNewCatalogStartsDegradedWithoutBackend(t *testing.T) {
	t.Parallel()

	assert.True(t, NewCatalog(nil).Degraded())
	assert.False(t, NewCatalog(failingCatalogRepo{}).Degraded())
}

func TestListBrandsLocalSortedByName(t *testing.T) {
	t.Parallel()

	s := NewCatalog(nil)
	brands, err := s.ListBrands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 5)

	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Apple", "Huawei", "Oppo", "Samsung", "Xiaomi"}, names)
}

func TestListBrandsMarksDegradedOnBackendFailure(t *testing.T) {
	t.Parallel()

	s := NewCatalog(failingCatalogRepo{})
	brands, err := s.ListBrands(context.Background())
	require.NoError(t, err)
	assert.Len(t, brands, 5)
	assert.True(t, s.Degraded())
}

func TestAddBrandValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		field   string
	}{
		{name: "empty", input: "", field: "name"},
		{name: "whitespace only", input: "   ", field: "name"},
		{name: "duplicate case-insensitive", input: "apple", field: "name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCatalog(nil)
			_, err := s.AddBrand(context.Background(), tc.input)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestAddBrandSynthesizesLocally(t *testing.T) {
	t.Parallel()

	s := NewCatalog(failingCatalogRepo{})
	b, err := s.AddBrand(context.Background(), "  Sony  ")
	require.NoError(t, err)
	assert.Equal(t, "Sony", b.Name)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.True(t, s.Degraded())

	assert.Equal(t, b, s.BrandByID(b.ID))
}

func TestAddModelValidation(t *testing.T) {
	t.Parallel()

	s := NewCatalog(nil)

	_, err := s.AddModel(context.Background(), "", "")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "brand_id")

	_, err = s.AddModel(context.Background(), "Pixel 9", "no-such-brand")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "brand not found", verr.Fields["brand_id"])
}

func TestAddModelJoinsBrandLocally(t *testing.T) {
	t.Parallel()

	s := NewCatalog(nil)
	m, err := s.AddModel(context.Background(), "iPhone 13", "1")
	require.NoError(t, err)
	require.NotNil(t, m.Brand)
	assert.Equal(t, "Apple", m.Brand.Name)
	assert.Equal(t, m, s.ModelByID(m.ID))
}

func TestListModelsFiltersByBrand(t *testing.T) {
	t.Parallel()

	s := NewCatalog(nil)

	all, err := s.ListModels(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	apple, err := s.ListModels(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, apple, 2)
	for _, m := range apple {
		assert.Equal(t, "1", m.BrandID)
	}
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/repair-workshop/internal/model"
)

func newLocalInventory(events EventPublisher) *Inventory {
	return NewInventory(nil, NewCatalog(nil), events)
}

func validPartInput() SparePartInput {
	return SparePartInput{
		Name:          "iPhone 14 Battery",
		PartType:      model.PartTypeBattery,
		BrandID:       "1",
		ModelID:       "2",
		Quantity:      8,
		PurchasePrice: 60,
		SellingPrice:  120,
		LowStockAlert: 3,
	}
}

func TestAddSparePartReportsEveryViolationAtOnce(t *testing.T) {
	t.Parallel()

	s := newLocalInventory(nil)
	_, err := s.AddSparePart(context.Background(), SparePartInput{
		Name:          "  ",
		PartType:      "Motherboard",
		BrandID:       "",
		ModelID:       "no-such-model",
		Quantity:      -1,
		PurchasePrice: 0,
		SellingPrice:  0,
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "part_type")
	assert.Contains(t, verr.Fields, "brand_id")
	assert.Contains(t, verr.Fields, "model_id")
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "purchase_price")
	assert.Contains(t, verr.Fields, "selling_price")
}

func TestAddSparePartSellingMustExceedPurchase(t *testing.T) {
	t.Parallel()

	in := validPartInput()
	in.PurchasePrice = 120
	in.SellingPrice = 120

	s := newLocalInventory(nil)
	_, err := s.AddSparePart(context.Background(), in)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "selling price must be greater than the purchase price", verr.Fields["selling_price"])
}

func TestAddSparePartScreenQualityRules(t *testing.T) {
	t.Parallel()

	t.Run("quality on non-screen rejected", func(t *testing.T) {
		in := validPartInput()
		in.ScreenQuality = "OLED"
		_, err := newLocalInventory(nil).AddSparePart(context.Background(), in)
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "screen_quality")
	})

	t.Run("unknown quality rejected", func(t *testing.T) {
		in := validPartInput()
		in.PartType = model.PartTypeScreen
		in.ScreenQuality = "Retina"
		_, err := newLocalInventory(nil).AddSparePart(context.Background(), in)
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "screen_quality")
	})

	t.Run("valid screen", func(t *testing.T) {
		in := validPartInput()
		in.Name = "iPhone 14 Screen"
		in.PartType = model.PartTypeScreen
		in.ScreenQuality = "AMOLED"
		p, err := newLocalInventory(nil).AddSparePart(context.Background(), in)
		require.NoError(t, err)
		require.NotNil(t, p.ScreenQuality)
		assert.Equal(t, "AMOLED", *p.ScreenQuality)
	})
}

func TestAddSparePartSynthesizesLocallyAndJoins(t *testing.T) {
	t.Parallel()

	s := NewInventory(failingPartRepo{}, NewCatalog(nil), nil)
	p, err := s.AddSparePart(context.Background(), validPartInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Apple", p.Brand.Name)
	require.NotNil(t, p.Model)
	assert.Equal(t, "iPhone 14", p.Model.Name)
	assert.True(t, s.Degraded())

	// New parts are listed first.
	parts, err := s.ListSpareParts(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.Equal(t, p.ID, parts[0].ID)
}

func TestUpdateSparePartUnconfirmedAppliesLocally(t *testing.T) {
	t.Parallel()

	s := NewInventory(failingPartRepo{}, NewCatalog(nil), nil)
	qty := 3
	got, err := s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Nil(t, got, "a backend failure leaves the update unconfirmed")

	local := s.PartByID("1")
	require.NotNil(t, local)
	assert.Equal(t, 3, local.Quantity)
	assert.True(t, s.Degraded())
}

func TestUpdateSparePartNotFound(t *testing.T) {
	t.Parallel()

	s := newLocalInventory(nil)
	_, err := s.UpdateSparePart(context.Background(), "no-such-part", model.SparePartPatch{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateSparePartValidatesMergedValues(t *testing.T) {
	t.Parallel()

	s := newLocalInventory(nil)
	selling := 100.0 // below the seeded purchase price of 800
	_, err := s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{SellingPrice: &selling})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "selling_price")
}

func TestUpdateSparePartEnforcesScreenQualityRules(t *testing.T) {
	t.Parallel()

	t.Run("quality cannot attach to a non-screen part", func(t *testing.T) {
		s := newLocalInventory(nil)
		quality := "OLED"
		// Seed part 2 is a battery.
		_, err := s.UpdateSparePart(context.Background(), "2", model.SparePartPatch{ScreenQuality: &quality})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "screen_quality")
		assert.Nil(t, s.PartByID("2").ScreenQuality, "rejected patches must not touch the local tier")
	})

	t.Run("part type cannot leave Screen while quality is set", func(t *testing.T) {
		s := newLocalInventory(nil)
		partType := model.PartTypeBattery
		// Seed part 1 is a screen with quality OLED.
		_, err := s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{PartType: &partType})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "screen_quality")
	})

	t.Run("clearing the quality allows the type change", func(t *testing.T) {
		s := newLocalInventory(nil)
		partType := model.PartTypeOther
		cleared := ""
		_, err := s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{
			PartType:      &partType,
			ScreenQuality: &cleared,
		})
		require.NoError(t, err)
		got := s.PartByID("1")
		assert.Equal(t, model.PartTypeOther, got.PartType)
		assert.Nil(t, got.ScreenQuality)
	})

	t.Run("unknown quality rejected on update too", func(t *testing.T) {
		s := newLocalInventory(nil)
		quality := "Retina"
		_, err := s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{ScreenQuality: &quality})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "screen_quality")
	})
}

func TestUpdateSparePartValidatesReferencesAndType(t *testing.T) {
	t.Parallel()

	s := newLocalInventory(nil)
	partType := "Motherboard"
	brandID := "no-such-brand"
	modelID := "no-such-model"
	name := "  "
	_, err := s.UpdateSparePart(context.Background(), "2", model.SparePartPatch{
		Name:     &name,
		PartType: &partType,
		BrandID:  &brandID,
		ModelID:  &modelID,
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "part_type")
	assert.Contains(t, verr.Fields, "brand_id")
	assert.Contains(t, verr.Fields, "model_id")
}

func TestUpdateSparePartPublishesLowStock(t *testing.T) {
	t.Parallel()

	events := &fakeEvents{}
	s := newLocalInventory(events)

	// Seed part 1 alerts at 5; dropping to the threshold fires.
	qty := 5
	_, err := s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{Quantity: &qty})
	require.NoError(t, err)
	require.Len(t, events.lowStock, 1)
	assert.Equal(t, "1", events.lowStock[0].SparePartID)
	assert.Equal(t, 5, events.lowStock[0].Quantity)

	// Above the threshold stays quiet.
	qty = 6
	_, err = s.UpdateSparePart(context.Background(), "1", model.SparePartPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Len(t, events.lowStock, 1)
}

package store

import (
	"time"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// The local tier is seeded with the same demo catalog the workshop's
// dashboard has always shown when the backend is unreachable, so an
// unconfigured process is usable out of the box.  Repairs start empty.

func seedCatalog(now time.Time) ([]*model.Brand, []*model.Model) {
	brands := []*model.Brand{
		{ID: "1", Name: "Apple", CreatedAt: now},
		{ID: "2", Name: "Samsung", CreatedAt: now},
		{ID: "3", Name: "Huawei", CreatedAt: now},
		{ID: "4", Name: "Xiaomi", CreatedAt: now},
		{ID: "5", Name: "Oppo", CreatedAt: now},
	}
	models := []*model.Model{
		{ID: "1", Name: "iPhone 15 Pro", BrandID: "1", CreatedAt: now, Brand: brands[0]},
		{ID: "2", Name: "iPhone 14", BrandID: "1", CreatedAt: now, Brand: brands[0]},
		{ID: "3", Name: "Galaxy S24", BrandID: "2", CreatedAt: now, Brand: brands[1]},
		{ID: "4", Name: "Galaxy A54", BrandID: "2", CreatedAt: now, Brand: brands[1]},
		{ID: "5", Name: "P60 Pro", BrandID: "3", CreatedAt: now, Brand: brands[2]},
	}
	return brands, models
}

func seedSpareParts(now time.Time, brands []*model.Brand, models []*model.Model) []*model.SparePart {
	oled := "OLED"
	return []*model.SparePart{
		{
			ID:            "1",
			Name:          "iPhone 15 Pro Screen",
			PartType:      model.PartTypeScreen,
			ScreenQuality: &oled,
			BrandID:       "1",
			ModelID:       "1",
			Quantity:      10,
			PurchasePrice: 800,
			SellingPrice:  1200,
			LowStockAlert: 5,
			CreatedAt:     now,
			UpdatedAt:     now,
			Brand:         brands[0],
			Model:         models[0],
		},
		{
			ID:            "2",
			Name:          "Galaxy S24 Battery",
			PartType:      model.PartTypeBattery,
			BrandID:       "2",
			ModelID:       "3",
			Quantity:      15,
			PurchasePrice: 150,
			SellingPrice:  250,
			LowStockAlert: 5,
			CreatedAt:     now,
			UpdatedAt:     now,
			Brand:         brands[1],
			Model:         models[2],
		},
	}
}

func defaultSettings(now time.Time) *model.WorkshopSettings {
	return &model.WorkshopSettings{
		ID:              "1",
		Name:            "Smart Phone Workshop",
		Address:         "",
		Phone:           "",
		ThankYouMessage: "Thank you for trusting us, we hope you had an excellent experience",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

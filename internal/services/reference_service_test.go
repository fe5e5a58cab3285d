package services

import (
	"testing"

	"milyem/internal/models"
	"milyem/internal/testutil"
)

func TestReferenceVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReferenceService(db)

	t.Run("lists shared rows plus the user's owned rows", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateSharedGemstonePrice(t, db, "sapphire", 450)
		testutil.CreateTestGemstonePrice(t, db, user.ID, "ruby", 0, 2, 600)
		testutil.CreateTestGemstonePrice(t, db, other.ID, "emerald", 0, 2, 700)

		rows, err := svc.ListGemstonePrices(user.ID)
		testutil.AssertNoError(t, err)

		if len(rows) != 2 {
			t.Fatalf("expected 2 visible rows, got %d", len(rows))
		}
		for _, row := range rows {
			if row.StoneType == "emerald" {
				t.Error("another user's owned row leaked into the listing")
			}
		}
	})

	t.Run("created rows are owned by the caller", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		row, err := svc.CreateLaborRate(user.ID, "ring", 12.5)
		testutil.AssertNoError(t, err)

		if row.Ownership != models.OwnershipOwned {
			t.Errorf("expected owned row, got %s", row.Ownership)
		}
		if row.UserID == nil || *row.UserID != user.ID {
			t.Errorf("expected owner %d, got %v", user.ID, row.UserID)
		}
	})
}

func TestReferenceDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReferenceService(db)

	t.Run("deletes an owned row", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		row := testutil.CreateTestGemstonePrice(t, db, user.ID, "ruby", 0, 2, 600)

		testutil.AssertNoError(t, svc.DeleteGemstonePrice(user.ID, row.ID))

		rows, err := svc.ListGemstonePrices(user.ID)
		testutil.AssertNoError(t, err)
		for _, r := range rows {
			if r.ID == row.ID {
				t.Error("row still visible after delete")
			}
		}
	})

	t.Run("rejects deleting a shared row", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		shared := testutil.CreateSharedGemstonePrice(t, db, "topaz", 120)

		err := svc.DeleteGemstonePrice(user.ID, shared.ID)
		testutil.AssertAppError(t, err, "SHARED_READ_ONLY")
	})

	t.Run("rejects deleting another user's row", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		row := testutil.CreateTestGemstonePrice(t, db, owner.ID, "ruby", 0, 2, 600)

		err := svc.DeleteGemstonePrice(other.ID, row.ID)
		testutil.AssertAppError(t, err, "RATE_ROW_NOT_FOUND")
	})

	t.Run("returns not found for a missing row", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteLaborRate(user.ID, 99999)
		testutil.AssertAppError(t, err, "RATE_ROW_NOT_FOUND")
	})
}

func TestReferenceUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReferenceService(db)

	t.Run("updates an owned row in place", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		row := testutil.CreateTestGemstonePrice(t, db, user.ID, "ruby", 0, 2, 600)

		updated, err := svc.UpdateGemstonePrice(user.ID, row.ID, "ruby", "AA", 0, 3, 650)
		testutil.AssertNoError(t, err)

		if updated.ID != row.ID {
			t.Errorf("expected row %d to be updated, got %d", row.ID, updated.ID)
		}
		if updated.PricePerCarat != 650 || updated.MaxCarat != 3 || updated.Quality != "AA" {
			t.Errorf("updated values not persisted: %+v", updated)
		}

		rows, err := svc.ListGemstonePrices(user.ID)
		testutil.AssertNoError(t, err)
		for _, r := range rows {
			if r.ID == row.ID && r.PricePerCarat != 650 {
				t.Errorf("stored row still has old price %v", r.PricePerCarat)
			}
		}
	})

	t.Run("keeps ownership after update", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		row, err := svc.CreateLaborRate(user.ID, "ring", 12.5)
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateLaborRate(user.ID, row.ID, "bracelet", 14)
		testutil.AssertNoError(t, err)

		if updated.Ownership != models.OwnershipOwned {
			t.Errorf("expected owned row, got %s", updated.Ownership)
		}
		if updated.UserID == nil || *updated.UserID != user.ID {
			t.Errorf("expected owner %d, got %v", user.ID, updated.UserID)
		}
	})

	t.Run("rejects editing a shared row", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		shared := testutil.CreateSharedGemstonePrice(t, db, "topaz", 120)

		_, err := svc.UpdateGemstonePrice(user.ID, shared.ID, "topaz", "", 0, 2, 130)
		testutil.AssertAppError(t, err, "SHARED_READ_ONLY")
	})

	t.Run("rejects editing another user's row", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		row := testutil.CreateTestGemstonePrice(t, db, owner.ID, "ruby", 0, 2, 600)

		_, err := svc.UpdateGemstonePrice(other.ID, row.ID, "ruby", "", 0, 2, 650)
		testutil.AssertAppError(t, err, "RATE_ROW_NOT_FOUND")
	})

	t.Run("returns not found for a missing row", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateLaborRate(user.ID, 99999, "ring", 14)
		testutil.AssertAppError(t, err, "RATE_ROW_NOT_FOUND")
	})

	t.Run("validates updated values like create", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		row, err := svc.CreateSettingRate(user.ID, models.StoneCategoryDiamond, 0, 0.25, models.PricingPerStone, 150)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateSettingRate(user.ID, row.ID, models.StoneCategoryDiamond, 0.5, 0.25, models.PricingPerStone, 150)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestReferenceValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReferenceService(db)

	user := testutil.CreateTestUser(t, db)

	t.Run("rejects inverted carat range on setting tier", func(t *testing.T) {
		_, err := svc.CreateSettingRate(user.ID, models.StoneCategoryDiamond, 0.5, 0.25, models.PricingPerStone, 150)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects inverted carat range on discount tier", func(t *testing.T) {
		_, err := svc.CreateDiamondDiscount(user.ID, 1, 0.5, 35)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects diamond cell without color or clarity", func(t *testing.T) {
		_, err := svc.CreateDiamondPrice(user.ID, "round", 0.5, 0.69, "", "VS1", 3200)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects empty product type on labor rate", func(t *testing.T) {
		_, err := svc.CreateLaborRate(user.ID, "", 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLoadTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReferenceService(db)

	t.Run("assembles calculator tables from visible rows", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestSettingRate(t, db, user.ID, models.StoneCategoryDiamond, 0, 0.25, models.PricingPerStone, 150)
		testutil.CreateTestDiamondPrice(t, db, user.ID, "round", 0.5, 0.69, "G", "VS1", 3200)
		testutil.CreateTestGemstonePrice(t, db, user.ID, "ruby", 0, 2, 600)
		testutil.CreateSharedGemstonePrice(t, db, "sapphire", 450)
		testutil.CreateTestGemstonePrice(t, db, other.ID, "emerald", 0, 2, 700)

		_, err := svc.CreateDiamondDiscount(user.ID, 0.3, 0.49, 35)
		testutil.AssertNoError(t, err)

		tables, err := svc.LoadTables(user.ID)
		testutil.AssertNoError(t, err)

		if len(tables.SettingTiers) != 1 {
			t.Errorf("expected 1 setting tier, got %d", len(tables.SettingTiers))
		}
		if len(tables.DiamondGrid) != 1 {
			t.Errorf("expected 1 diamond cell, got %d", len(tables.DiamondGrid))
		}
		if len(tables.Gemstones) != 2 {
			t.Errorf("expected owned plus shared gemstone rows, got %d", len(tables.Gemstones))
		}
		if len(tables.DiamondDiscounts) != 1 {
			t.Errorf("expected 1 discount tier, got %d", len(tables.DiamondDiscounts))
		}
	})
}

package services

import (
	"testing"

	"milyem/internal/pagination"
	"milyem/internal/testutil"
)

func TestCreateBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBatchService(db, NewManufacturerService(db))

	t.Run("assigns sequential numbers per manufacturer", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		m1 := testutil.CreateTestManufacturer(t, db, user.ID)
		m2 := testutil.CreateTestManufacturer(t, db, user.ID)

		first, err := svc.CreateBatch(user.ID, m1.ID, "")
		testutil.AssertNoError(t, err)
		second, err := svc.CreateBatch(user.ID, m1.ID, "")
		testutil.AssertNoError(t, err)
		otherFirst, err := svc.CreateBatch(user.ID, m2.ID, "")
		testutil.AssertNoError(t, err)

		if first.Number != 1 || second.Number != 2 {
			t.Errorf("expected numbers 1 and 2, got %d and %d", first.Number, second.Number)
		}
		if otherFirst.Number != 1 {
			t.Errorf("expected independent sequence per manufacturer, got %d", otherFirst.Number)
		}
	})

	t.Run("rejects a manufacturer owned by another user", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		m := testutil.CreateTestManufacturer(t, db, other.ID)

		_, err := svc.CreateBatch(user.ID, m.ID, "")
		testutil.AssertAppError(t, err, "MANUFACTURER_NOT_FOUND")
	})
}

func TestGetUserBatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBatchService(db, NewManufacturerService(db))

	t.Run("filters by manufacturer", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		m1 := testutil.CreateTestManufacturer(t, db, user.ID)
		m2 := testutil.CreateTestManufacturer(t, db, user.ID)

		testutil.CreateTestBatch(t, db, user.ID, m1.ID, 1)
		testutil.CreateTestBatch(t, db, user.ID, m1.ID, 2)
		testutil.CreateTestBatch(t, db, user.ID, m2.ID, 1)

		resp, err := svc.GetUserBatches(user.ID, pagination.PageRequest{}, &m1.ID)
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 batches, got %d", resp.TotalItems)
		}

		all, err := svc.GetUserBatches(user.ID, pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)
		if all.TotalItems != 3 {
			t.Errorf("expected 3 batches, got %d", all.TotalItems)
		}
	})
}

func TestGetBatchSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBatchService(db, NewManufacturerService(db))

	t.Run("sums stored totals without recomputing", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		m := testutil.CreateTestManufacturer(t, db, user.ID)
		batch := testutil.CreateTestBatch(t, db, user.ID, m.ID, 1)

		// Fixtures store total 15000, quoted 16000, profit 1000 each.
		testutil.CreateTestAnalysis(t, db, user.ID, m.ID, &batch.ID)
		testutil.CreateTestAnalysis(t, db, user.ID, m.ID, &batch.ID)
		testutil.CreateTestAnalysis(t, db, user.ID, m.ID, nil)

		summary, err := svc.GetBatchSummary(user.ID, batch.ID)
		testutil.AssertNoError(t, err)

		if summary.AnalysisCount != 2 {
			t.Errorf("expected 2 analyses, got %d", summary.AnalysisCount)
		}
		if summary.TotalCost != 30000 {
			t.Errorf("expected total cost 30000, got %f", summary.TotalCost)
		}
		if summary.TotalQuoted != 32000 {
			t.Errorf("expected total quoted 32000, got %f", summary.TotalQuoted)
		}
		if summary.TotalProfitLoss != 2000 {
			t.Errorf("expected total profit 2000, got %f", summary.TotalProfitLoss)
		}
	})

	t.Run("returns zeros for an empty batch", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		m := testutil.CreateTestManufacturer(t, db, user.ID)
		batch := testutil.CreateTestBatch(t, db, user.ID, m.ID, 1)

		summary, err := svc.GetBatchSummary(user.ID, batch.ID)
		testutil.AssertNoError(t, err)
		if summary.AnalysisCount != 0 || summary.TotalCost != 0 {
			t.Errorf("expected empty summary, got %+v", summary)
		}
	})
}

func TestDeleteBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBatchService(db, NewManufacturerService(db))

	t.Run("deletes an empty batch", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		m := testutil.CreateTestManufacturer(t, db, user.ID)
		batch := testutil.CreateTestBatch(t, db, user.ID, m.ID, 1)

		testutil.AssertNoError(t, svc.DeleteBatch(user.ID, batch.ID))

		_, err := svc.GetBatchByID(user.ID, batch.ID)
		testutil.AssertAppError(t, err, "BATCH_NOT_FOUND")
	})

	t.Run("refuses to delete a batch with analyses", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		m := testutil.CreateTestManufacturer(t, db, user.ID)
		batch := testutil.CreateTestBatch(t, db, user.ID, m.ID, 1)
		analysis := testutil.CreateTestAnalysis(t, db, user.ID, m.ID, &batch.ID)

		err := svc.DeleteBatch(user.ID, batch.ID)
		testutil.AssertAppError(t, err, "BATCH_NOT_EMPTY")

		// The member analysis is untouched.
		var count int64
		if err := db.Model(analysis).Where("id = ?", analysis.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count analyses: %v", err)
		}
		if count != 1 {
			t.Error("analysis was removed with the batch")
		}
	})

	t.Run("does not delete another user's batch", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		m := testutil.CreateTestManufacturer(t, db, owner.ID)
		batch := testutil.CreateTestBatch(t, db, owner.ID, m.ID, 1)

		err := svc.DeleteBatch(other.ID, batch.ID)
		testutil.AssertAppError(t, err, "BATCH_NOT_FOUND")
	})
}

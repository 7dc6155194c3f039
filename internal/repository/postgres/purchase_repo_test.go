package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/repository/postgres"
	"github.com/arjunm/coursehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseRepository_UpdateStatus(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(instructor.ID).Build(t, testDB.DB)

	t.Run("pending to completed succeeds once", func(t *testing.T) {
		purchase := testutil.NewPurchaseBuilder(student.ID, course.ID).Build(t, testDB.DB)

		ok, err := repos.Purchase.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseCompleted, map[string]interface{}{
			"gateway_payment_id": "pay_once",
		})
		require.NoError(t, err)
		assert.True(t, ok)

		// Second transition from pending finds no matching row.
		ok, err = repos.Purchase.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseCompleted, nil)
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := repos.Purchase.GetByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseCompleted, stored.Status)
		assert.Equal(t, "pay_once", stored.GatewayPaymentID)
	})

	t.Run("guard rejects wrong prior state", func(t *testing.T) {
		purchase := testutil.NewPurchaseBuilder(student.ID, course.ID).
			WithStatus(domain.PurchaseFailed).
			Build(t, testDB.DB)

		ok, err := repos.Purchase.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseCompleted, nil)
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := repos.Purchase.GetByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseFailed, stored.Status)
	})

	t.Run("concurrent completions apply exactly once", func(t *testing.T) {
		purchase := testutil.NewPurchaseBuilder(student.ID, course.ID).Build(t, testDB.DB)

		const attempts = 8
		results := make([]bool, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := repos.Purchase.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseCompleted, nil)
				assert.NoError(t, err)
				results[i] = ok
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, ok := range results {
			if ok {
				wins++
			}
		}
		assert.Equal(t, 1, wins)
	})
}

func TestPurchaseRepository_Lookups(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(instructor.ID).Build(t, testDB.DB)

	purchase := testutil.NewPurchaseBuilder(student.ID, course.ID).
		WithOrderID("order_lookup").
		Build(t, testDB.DB)

	ok, err := repos.Purchase.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseCompleted, map[string]interface{}{
		"gateway_payment_id": "pay_lookup",
	})
	require.NoError(t, err)
	require.True(t, ok)

	byOrder, err := repos.Purchase.GetByGatewayOrderID(ctx, "order_lookup")
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, byOrder.ID)

	byPayment, err := repos.Purchase.GetByGatewayPaymentID(ctx, "pay_lookup")
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, byPayment.ID)

	completed, err := repos.Purchase.GetCompletedByUserAndCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, completed.ID)

	list, err := repos.Purchase.ListByUserID(ctx, student.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

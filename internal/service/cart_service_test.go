package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/dto"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

func newCartFixture(maxItems int) (*CartService, *fakeCartRepo, *fakePassRepo, *fakeBatchRepo) {
	carts := &fakeCartRepo{items: map[string][]models.CartItem{}}
	passes := &fakePassRepo{passes: map[string][]models.Pass{}}
	quiet := eveningPhysics()
	quiet.ID = "b-bio"
	quiet.SubjectID = strPtr("bio")
	quiet.SubjectName = strPtr("Biology")
	quiet.SchedulePattern = "tts"
	quiet.StartTime = "18:00"
	quiet.EndTime = "19:00"
	broken := eveningPhysics()
	broken.ID = "b-broken"
	broken.SchedulePattern = ""
	batches := &fakeBatchRepo{batches: map[string]models.Batch{
		"b-phy":    eveningPhysics(),
		"b-bio":    quiet,
		"b-broken": broken,
	}}
	metrics := NewMetricsService()
	conflicts := NewConflictService(carts, passes, batches, nil, metrics, nil, zap.NewNop())
	svc := NewCartService(carts, passes, conflicts, maxItems, metrics, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, carts, passes, batches
}

func TestCartServiceAddBatch(t *testing.T) {
	svc, carts, _, _ := newCartFixture(5)

	item, result, err := svc.Add(context.Background(), "stu-1", dto.AddCartItemRequest{BatchID: "b-phy"})
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Equal(t, models.VerticalCoaching, item.Vertical)
	assert.Equal(t, "b-phy", models.StringValue(item.BatchID))
	assert.Equal(t, "Evening", models.StringValue(item.BatchName))
	assert.Equal(t, []string{"mon", "wed", "fri"}, []string(item.ScheduleDays))
	assert.Equal(t, "16:00-18:00", item.TimeSlot)
	assert.Len(t, carts.items["stu-1"], 1)
}

func TestCartServiceAddReportsInfoMessages(t *testing.T) {
	svc, carts, _, _ := newCartFixture(5)
	carts.items["stu-1"] = []models.CartItem{{
		ID: "c1", StudentID: "stu-1", Vertical: models.VerticalCoaching,
		BusinessID: "biz-1", BusinessName: "Apex Academy",
		SubjectName: strPtr("Chemistry"), ScheduleDays: []string{"tue"}, TimeSlot: "17:00-18:00",
	}}

	_, result, err := svc.Add(context.Background(), "stu-1", dto.AddCartItemRequest{Vertical: "Coaching", BatchID: "b-bio"})
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Equal(t, []string{
		"Consecutive classes at Apex Academy on Tuesday: Chemistry (5:00 PM - 6:00 PM) followed by Biology - Evening (6:00 PM - 7:00 PM).",
	}, result.InfoMessages)
}

func TestCartServiceAddRejectsConflict(t *testing.T) {
	svc, carts, passes, _ := newCartFixture(5)
	passes.passes["stu-1"] = []models.Pass{{
		ID: "p1", Vertical: models.VerticalCoaching, Status: models.PassStatusActive,
		BusinessID: "biz-2", BusinessName: "Zenith Tutors", SubjectName: strPtr("English"),
		ScheduleDays: []string{"fri"}, TimeSlot: "17:30-18:30",
	}}

	item, result, err := svc.Add(context.Background(), "stu-1", dto.AddCartItemRequest{BatchID: "b-phy"})
	require.Error(t, err)
	assert.Nil(t, item)
	assert.True(t, result.HasConflict)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)

	var blocked *conflict.BlockedError
	require.True(t, errors.As(err, &blocked))
	require.Len(t, blocked.Result.Conflicts, 1)
	assert.Equal(t, "p1", blocked.Result.Conflicts[0].Existing.ID)
	assert.Empty(t, carts.items["stu-1"])
}

func TestCartServiceAddRejectsDuplicate(t *testing.T) {
	svc, _, _, _ := newCartFixture(5)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "stu-1", dto.AddCartItemRequest{BatchID: "b-phy"})
	require.NoError(t, err)

	_, result, err := svc.Add(ctx, "stu-1", dto.AddCartItemRequest{BatchID: "b-phy"})
	require.Error(t, err)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, conflict.ConflictDuplicateBatch, result.Conflicts[0].Type)
}

func TestCartServiceAddCartFull(t *testing.T) {
	svc, carts, _, batches := newCartFixture(1)
	carts.items["stu-1"] = []models.CartItem{mathsCartItem("stu-1")}

	_, _, err := svc.Add(context.Background(), "stu-1", dto.AddCartItemRequest{BatchID: "b-bio"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCartFull.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, batches.calls)
}

func TestCartServiceAddValidation(t *testing.T) {
	svc, _, _, _ := newCartFixture(5)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "stu-1", dto.AddCartItemRequest{Vertical: models.VerticalCoaching})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, _, err = svc.Add(ctx, "stu-1", dto.AddCartItemRequest{Vertical: "spa", BatchID: "b-phy"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, _, err = svc.Add(ctx, "stu-1", dto.AddCartItemRequest{BatchID: "b-broken"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, _, err = svc.Add(ctx, "stu-1", dto.AddCartItemRequest{BatchID: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestCartServiceAddVenueItem(t *testing.T) {
	svc, _, _, batches := newCartFixture(5)
	ctx := context.Background()

	item, result, err := svc.Add(ctx, "stu-1", dto.AddCartItemRequest{
		Vertical:     models.VerticalGym,
		BusinessID:   "gym-1",
		BusinessName: "Iron Gym",
		ScheduleDays: []string{"MON", "mon", "sun"},
		TimeSlot:     "06:00-07:00",
	})
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Equal(t, []string{"mon", "sun"}, []string(item.ScheduleDays))
	assert.Nil(t, item.BatchID)
	assert.Equal(t, 0, batches.calls)

	_, _, err = svc.Add(ctx, "stu-1", dto.AddCartItemRequest{
		Vertical: models.VerticalLibrary, BusinessID: "lib-1", BusinessName: "City Library", TimeSlot: "09:00-08:00",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestCartServiceListAndRemove(t *testing.T) {
	svc, carts, _, _ := newCartFixture(3)
	ctx := context.Background()
	carts.items["stu-1"] = []models.CartItem{mathsCartItem("stu-1")}

	view, err := svc.List(ctx, "stu-1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.MaxItems)
	assert.False(t, view.Validation.HasConflicts)

	item, err := svc.Get(ctx, "stu-1", "c-math")
	require.NoError(t, err)
	assert.Equal(t, "Maths", models.StringValue(item.SubjectName))

	require.NoError(t, svc.Remove(ctx, "stu-1", "c-math"))
	err = svc.Remove(ctx, "stu-1", "c-math")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	_, err = svc.Get(ctx, "stu-1", "c-math")
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	view, err = svc.List(ctx, "stu-2")
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}

func TestCartServiceAddSerialisesPerStudent(t *testing.T) {
	svc, carts, _, _ := newCartFixture(1)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Add(context.Background(), "stu-1", dto.AddCartItemRequest{
				Vertical: models.VerticalGym, BusinessID: "gym-1", BusinessName: "Iron Gym",
				ScheduleDays: []string{"mon"}, TimeSlot: "06:00-07:00",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	full := 0
	for err := range errs {
		if err != nil {
			assert.Equal(t, appErrors.ErrCartFull.Code, appErrors.FromError(err).Code)
			full++
		}
	}
	assert.Equal(t, attempts-1, full)
	assert.Len(t, carts.items["stu-1"], 1)
	assert.Equal(t, attempts, carts.locked)
	assert.Equal(t, attempts, carts.released)
}

func TestCartServiceAddLockFailure(t *testing.T) {
	svc, carts, _, batches := newCartFixture(5)
	carts.lockErr = errors.New("pool exhausted")

	_, _, err := svc.Add(context.Background(), "stu-1", dto.AddCartItemRequest{BatchID: "b-phy"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
	assert.Empty(t, carts.items["stu-1"])
	assert.Equal(t, 0, batches.calls)
}

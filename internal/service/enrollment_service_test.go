package service

import (
	"context"
	"encoding/json"
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnroll_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "a@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)

	info := ClientInfo{
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148",
		Referrer:  "https://www.google.com/search?q=go",
		IP:        "203.0.113.7",
	}

	first, created, err := f.enrollments.Enroll(ctx, user.ID, course.ID, info)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := f.enrollments.Enroll(ctx, user.ID, course.ID, info)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var reloaded model.Course
	require.NoError(t, f.db.Where("id = ?", course.ID).First(&reloaded).Error)
	assert.Equal(t, 1, reloaded.EnrollmentCount)

	var analytics []model.EnrollmentAnalytics
	require.NoError(t, f.db.Find(&analytics).Error)
	require.Len(t, analytics, 1)
	assert.Equal(t, model.DeviceMobile, analytics[0].DeviceType)
	assert.Equal(t, "google", analytics[0].ReferralSource)
	assert.Equal(t, "203.0.113.7", analytics[0].IPAddress)
}

func TestEnroll_ConcurrentRequestsCountOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "a@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)

	var wg sync.WaitGroup
	ids := make([]string, 5)
	errs := make([]error, 5)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, _, err := f.enrollments.Enroll(ctx, user.ID, course.ID, ClientInfo{})
			errs[i] = err
			if err == nil {
				ids[i] = e.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var reloaded model.Course
	require.NoError(t, f.db.Where("id = ?", course.ID).First(&reloaded).Error)
	assert.Equal(t, 1, reloaded.EnrollmentCount)
}

func TestEnroll_UnknownCourse(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.enrollments.Enroll(context.Background(), "u1", "missing", ClientInfo{})
	assertKind(t, err, util.KindNotFound)
}

func TestCompleteLesson_SetSemanticsAndProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "a@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, f.db, mod.ID, "s", 0)
	l1 := testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "l1", 0)
	testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "l2", 1)
	testutil.CreateLesson(t, f.db, testutil.SubModulePlacement(mod, sub), "l3", 0)

	_, err := f.enrollments.CompleteLesson(ctx, user.ID, l1.ID)
	assertKind(t, err, util.KindNotFound)

	_, _, err = f.enrollments.Enroll(ctx, user.ID, course.ID, ClientInfo{})
	require.NoError(t, err)

	progress, err := f.enrollments.CompleteLesson(ctx, user.ID, l1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), progress.CompletedLessons)
	assert.Equal(t, int64(3), progress.TotalLessons)
	assert.Equal(t, 33, progress.Percentage)

	progress, err = f.enrollments.CompleteLesson(ctx, user.ID, l1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), progress.CompletedLessons)

	progress, err = f.enrollments.Progress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Percentage)
}

func TestProgress_IgnoresDeletedLessons(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "a@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	l1 := testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "l1", 0)
	l2 := testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "l2", 1)

	_, _, err := f.enrollments.Enroll(ctx, user.ID, course.ID, ClientInfo{})
	require.NoError(t, err)
	_, err = f.enrollments.CompleteLesson(ctx, user.ID, l1.ID)
	require.NoError(t, err)
	_, err = f.enrollments.CompleteLesson(ctx, user.ID, l2.ID)
	require.NoError(t, err)

	require.NoError(t, f.lessons.Delete(ctx, l2.ID))

	progress, err := f.enrollments.Progress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), progress.CompletedLessons)
	assert.Equal(t, int64(1), progress.TotalLessons)
	assert.Equal(t, 100, progress.Percentage)
}

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 0, ProgressPercentage(0, 0))
	assert.Equal(t, 0, ProgressPercentage(0, 4))
	assert.Equal(t, 67, ProgressPercentage(2, 3))
	assert.Equal(t, 100, ProgressPercentage(5, 5))
}

func TestMyEnrollments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "a@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "basics", 0)
	done := testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "done", 0)
	testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "todo", 1)

	_, _, err := f.enrollments.Enroll(ctx, user.ID, course.ID, ClientInfo{})
	require.NoError(t, err)
	_, err = f.enrollments.CompleteLesson(ctx, user.ID, done.ID)
	require.NoError(t, err)

	summaries, err := f.enrollments.MyEnrollments(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].Course)
	assert.Equal(t, "Go", summaries[0].Course.Title)
	assert.Equal(t, 50, summaries[0].Progress.Percentage)
	assert.Equal(t, []string{done.ID}, summaries[0].CompletedLessons)

	raw, err := json.Marshal(summaries[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"completedLessons":["`+done.ID+`"]`)
}

func TestEnroll_StoreFailureIsNotTreatedAsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "a@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)

	storeErr := errors.New("disk full")
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_enrollment", func(tx *gorm.DB) {
		if tx.Statement.Table == "enrollments" {
			tx.AddError(storeErr)
		}
	}))

	_, _, err := f.enrollments.Enroll(ctx, user.ID, course.ID, ClientInfo{})
	require.ErrorIs(t, err, storeErr)
	assertKind(t, err, util.KindUnexpected)

	var reloaded model.Course
	require.NoError(t, f.db.Where("id = ?", course.ID).First(&reloaded).Error)
	assert.Equal(t, 0, reloaded.EnrollmentCount)
}

package repository

import (
	"context"
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOrder_AppendsWithoutGaps(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewModuleRepository(db)
	course := testutil.CreateCourse(t, db, "Go", nil, 0)

	for i := 0; i < 5; i++ {
		next, err := repo.NextOrder(ctx, course.ID)
		require.NoError(t, err)
		testutil.CreateModule(t, db, course.ID, "m", next)
	}

	modules, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	orders := make([]int, 0, len(modules))
	for _, m := range modules {
		orders = append(orders, m.Order)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, orders)
}

func TestNextOrder_SiblingGroupsAreIndependent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, "Go", nil, 0)
	mod := testutil.CreateModule(t, db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, db, mod.ID, "s", 0)

	testutil.CreateLesson(t, db, testutil.ModulePlacement(mod), "direct", 0)
	testutil.CreateLesson(t, db, testutil.ModulePlacement(mod), "direct", 1)
	testutil.CreateLesson(t, db, testutil.SubModulePlacement(mod, sub), "nested", 0)

	lessons := NewLessonRepository(db)
	next, err := lessons.NextOrder(ctx, model.ModuleScope(mod.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	next, err = lessons.NextOrder(ctx, model.SubModuleScope(sub.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	// quizzes keep their own sequence in the same scope
	next, err = NewQuizRepository(db).NextOrder(ctx, model.ModuleScope(mod.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestApplyOrder_Swap(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewModuleRepository(db)
	course := testutil.CreateCourse(t, db, "Go", nil, 0)
	a := testutil.CreateModule(t, db, course.ID, "a", 0)
	b := testutil.CreateModule(t, db, course.ID, "b", 1)
	c := testutil.CreateModule(t, db, course.ID, "c", 2)

	err := repo.Reorder(ctx, []OrderUpdate{{ID: a.ID, Order: b.Order}, {ID: b.ID, Order: a.Order}})
	require.NoError(t, err)

	modules, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, b.ID, modules[0].ID)
	assert.Equal(t, a.ID, modules[1].ID)
	assert.Equal(t, c.ID, modules[2].ID)
	assert.Equal(t, 2, modules[2].Order)
}

func TestApplyOrder_UnknownIDIsSkipped(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewModuleRepository(db)
	course := testutil.CreateCourse(t, db, "Go", nil, 0)
	a := testutil.CreateModule(t, db, course.ID, "a", 0)

	err := repo.Reorder(ctx, []OrderUpdate{{ID: "missing", Order: 3}, {ID: a.ID, Order: 7}})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Order)
}

func TestApplyOrder_ReportsFailedIDs(t *testing.T) {
	db := testutil.NewDB(t)

	err := ApplyOrder(context.Background(), db, "no_such_table", "order", []OrderUpdate{{ID: "x1", Order: 1}})
	require.Error(t, err)

	var reorderErr *ReorderError
	require.True(t, errors.As(err, &reorderErr))
	assert.Equal(t, []string{"x1"}, reorderErr.Failed)
	assert.Contains(t, err.Error(), "x1")
}

func TestCategoryReorder_UsesFeaturedOrder(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	web := &model.Category{Name: "Web"}
	data := &model.Category{Name: "Data"}
	for _, c := range []*model.Category{web, data} {
		next, err := repo.NextFeaturedOrder(ctx)
		require.NoError(t, err)
		c.FeaturedOrder = next
		require.NoError(t, repo.Create(ctx, c))
	}

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Web", categories[0].Name)

	require.NoError(t, repo.Reorder(ctx, []OrderUpdate{{ID: web.ID, Order: 1}, {ID: data.ID, Order: 0}}))

	categories, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Data", categories[0].Name)
	assert.Equal(t, "Web", categories[1].Name)
}

func TestCategoryList_TiesBreakByName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCategoryRepository(db)
	testutil.CreateCategory(t, db, "Zeta")
	testutil.CreateCategory(t, db, "Alpha")

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Alpha", categories[0].Name)
}

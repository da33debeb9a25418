package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleCreate_AppendsWithinCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	other := testutil.CreateCourse(t, f.db, "Rust", nil, 1)

	for i := 0; i < 3; i++ {
		m, err := f.modules.Create(ctx, CreateModuleRequest{CourseID: course.ID, Title: "m"})
		require.NoError(t, err)
		assert.Equal(t, i, m.Order)
	}

	m, err := f.modules.Create(ctx, CreateModuleRequest{CourseID: other.ID, Title: "m"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Order)
}

func TestModuleCreate_UnknownCourse(t *testing.T) {
	f := newFixture(t)
	_, err := f.modules.Create(context.Background(), CreateModuleRequest{CourseID: "missing", Title: "m"})
	assertKind(t, err, util.KindNotFound)
}

func TestModuleDelete_CascadesEmptySubModules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	testutil.CreateSubModule(t, f.db, mod.ID, "s1", 0)
	testutil.CreateSubModule(t, f.db, mod.ID, "s2", 1)

	require.NoError(t, f.modules.Delete(ctx, mod.ID))

	var subs int64
	require.NoError(t, f.db.Model(&model.SubModule{}).Where("module_id = ?", mod.ID).Count(&subs).Error)
	assert.Zero(t, subs)

	_, err := f.modules.Get(ctx, mod.ID)
	assertKind(t, err, util.KindNotFound)
}

func TestModuleDelete_BlockedByNestedContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, f.db, mod.ID, "s", 0)

	testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "direct", 0)
	testutil.CreateLesson(t, f.db, testutil.SubModulePlacement(mod, sub), "nested", 0)
	testutil.CreateQuiz(t, f.db, testutil.SubModulePlacement(mod, sub), "nested quiz")

	err := f.modules.Delete(ctx, mod.ID)
	assertKind(t, err, util.KindConflict)
	assert.Contains(t, err.Error(), "3 items still reference it")
	assert.Contains(t, err.Error(), "2 lessons, 1 quiz")

	// nothing was removed
	var subs int64
	require.NoError(t, f.db.Model(&model.SubModule{}).Where("module_id = ?", mod.ID).Count(&subs).Error)
	assert.Equal(t, int64(1), subs)
}

func TestSubModuleDelete_GuardReportsCountsPerType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, f.db, mod.ID, "s", 0)

	testutil.CreateLesson(t, f.db, testutil.SubModulePlacement(mod, sub), "l1", 0)
	testutil.CreateLesson(t, f.db, testutil.SubModulePlacement(mod, sub), "l2", 1)

	err := f.subModules.Delete(ctx, sub.ID)
	assertKind(t, err, util.KindConflict)
	assert.Contains(t, err.Error(), "2 lessons and 0 quizzes")

	empty := testutil.CreateSubModule(t, f.db, mod.ID, "empty", 1)
	require.NoError(t, f.subModules.Delete(ctx, empty.ID))
}

func TestCourseDelete_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "learner@example.com", model.RoleUser)

	enrolled := testutil.CreateCourse(t, f.db, "Enrolled", nil, 0)
	_, _, err := f.enrollments.Enroll(ctx, user.ID, enrolled.ID, ClientInfo{})
	require.NoError(t, err)

	err = f.courses.Delete(ctx, enrolled.ID)
	assertKind(t, err, util.KindConflict)
	assert.Contains(t, err.Error(), "1 user is enrolled")

	withModule := testutil.CreateCourse(t, f.db, "Has modules", nil, 1)
	testutil.CreateModule(t, f.db, withModule.ID, "m", 0)
	err = f.courses.Delete(ctx, withModule.ID)
	assertKind(t, err, util.KindConflict)
	assert.Contains(t, err.Error(), "1 module")

	empty := testutil.CreateCourse(t, f.db, "Empty", nil, 2)
	require.NoError(t, f.courses.Delete(ctx, empty.ID))
	_, err = f.courses.Get(ctx, empty.ID)
	assertKind(t, err, util.KindNotFound)
}

func TestCourseUpdate_ChangingCategoryAppends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	web := testutil.CreateCategory(t, f.db, "Web")
	data := testutil.CreateCategory(t, f.db, "Data")

	testutil.CreateCourse(t, f.db, "Pandas", &data.ID, 0)
	course, err := f.courses.Create(ctx, CourseRequest{Title: "HTML", CategoryID: &web.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, course.Order)

	updated, err := f.courses.Update(ctx, course.ID, CourseRequest{Title: "HTML", CategoryID: &data.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Order)
	assert.Equal(t, data.ID, *updated.CategoryID)
}

func TestLessonCreate_RequiresScope(t *testing.T) {
	f := newFixture(t)
	_, err := f.lessons.Create(context.Background(), LessonRequest{Title: "orphan"})
	assertKind(t, err, util.KindValidation)
}

func TestLessonCreate_DenormalizesAncestors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, f.db, mod.ID, "s", 0)

	lesson, err := f.lessons.Create(ctx, LessonRequest{
		ScopeRequest: ScopeRequest{SubModuleID: sub.ID},
		Title:        "nested",
	})
	require.NoError(t, err)
	assert.Equal(t, course.ID, lesson.CourseID)
	assert.Equal(t, mod.ID, lesson.ModuleID)
	require.NotNil(t, lesson.SubModuleID)
	assert.Equal(t, sub.ID, *lesson.SubModuleID)
	assert.Equal(t, model.SubModuleScope(sub.ID), lesson.Scope())
}

func TestLessonCreate_SubModuleOfAnotherModule(t *testing.T) {
	f := newFixture(t)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	a := testutil.CreateModule(t, f.db, course.ID, "a", 0)
	b := testutil.CreateModule(t, f.db, course.ID, "b", 1)
	sub := testutil.CreateSubModule(t, f.db, b.ID, "s", 0)

	_, err := f.lessons.Create(context.Background(), LessonRequest{
		ScopeRequest: ScopeRequest{ModuleID: a.ID, SubModuleID: sub.ID},
		Title:        "mismatch",
	})
	assertKind(t, err, util.KindValidation)
}

func TestLessonListByModule_OnlyDirectLessons(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, f.db, mod.ID, "s", 0)

	for _, title := range []string{"first", "second"} {
		_, err := f.lessons.Create(ctx, LessonRequest{ScopeRequest: ScopeRequest{ModuleID: mod.ID}, Title: title})
		require.NoError(t, err)
	}
	_, err := f.lessons.Create(ctx, LessonRequest{ScopeRequest: ScopeRequest{SubModuleID: sub.ID}, Title: "nested"})
	require.NoError(t, err)

	direct, err := f.lessons.ListByModule(ctx, mod.ID)
	require.NoError(t, err)
	require.Len(t, direct, 2)
	assert.Equal(t, "first", direct[0].Title)
	assert.Equal(t, 0, direct[0].Order)
	assert.Equal(t, 1, direct[1].Order)

	nested, err := f.lessons.ListBySubModule(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, 0, nested[0].Order)
}

func TestLessonUpdate_MoveAppendsToNewScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	sub := testutil.CreateSubModule(t, f.db, mod.ID, "s", 0)
	testutil.CreateLesson(t, f.db, testutil.SubModulePlacement(mod, sub), "existing", 0)

	lesson, err := f.lessons.Create(ctx, LessonRequest{ScopeRequest: ScopeRequest{ModuleID: mod.ID}, Title: "mover"})
	require.NoError(t, err)

	moved, err := f.lessons.Update(ctx, lesson.ID, LessonRequest{
		ScopeRequest: ScopeRequest{SubModuleID: sub.ID},
		Title:        "mover",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubModuleScope(sub.ID), moved.Scope())
	assert.Equal(t, 1, moved.Order)

	reloaded, err := f.lessons.Get(ctx, lesson.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.SubModuleID)
	assert.Equal(t, sub.ID, *reloaded.SubModuleID)
}

func TestSearch_FiltersByTypeAndLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	beginner, err := f.courses.Create(ctx, CourseRequest{Title: "Go basics", Level: model.LevelBeginner})
	require.NoError(t, err)
	advanced, err := f.courses.Create(ctx, CourseRequest{Title: "Go internals", Level: model.LevelAdvanced})
	require.NoError(t, err)

	m1 := testutil.CreateModule(t, f.db, beginner.ID, "m", 0)
	m2 := testutil.CreateModule(t, f.db, advanced.ID, "m", 0)
	testutil.CreateLesson(t, f.db, testutil.ModulePlacement(m1), "Go syntax", 0)
	testutil.CreateLesson(t, f.db, testutil.ModulePlacement(m2), "Go scheduler", 0)

	hits, total, err := f.search.Search(ctx, SearchQuery{Q: "Go"}, util.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, hits, 4)

	hits, total, err = f.search.Search(ctx, SearchQuery{Q: "Go", Type: SearchLesson, Level: "advanced"}, util.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, hits, 1)
	assert.Equal(t, "Go scheduler", hits[0].Title)

	_, _, err = f.search.Search(ctx, SearchQuery{Type: "video"}, util.Page{Page: 1, Limit: 10})
	assertKind(t, err, util.KindValidation)
}

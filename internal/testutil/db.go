// Package testutil provides in-memory databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.OpenSQLite(dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateCourse(t *testing.T, db *gorm.DB, title string, categoryID *string, order int) *model.Course {
	t.Helper()
	c := &model.Course{Title: title, CategoryID: categoryID, Order: order, Level: model.LevelBeginner}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateModule(t *testing.T, db *gorm.DB, courseID, title string, order int) *model.Module {
	t.Helper()
	m := &model.Module{Title: title, CourseID: courseID, Order: order}
	require.NoError(t, db.Create(m).Error)
	return m
}

func CreateSubModule(t *testing.T, db *gorm.DB, moduleID, title string, order int) *model.SubModule {
	t.Helper()
	s := &model.SubModule{Title: title, ModuleID: moduleID, Order: order}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateLesson(t *testing.T, db *gorm.DB, p model.Placement, title string, order int) *model.Lesson {
	t.Helper()
	l := &model.Lesson{Title: title, Order: order}
	l.Place(p)
	require.NoError(t, db.Create(l).Error)
	return l
}

func CreateQuiz(t *testing.T, db *gorm.DB, p model.Placement, title string, questions ...model.Question) *model.Quiz {
	t.Helper()
	q := &model.Quiz{Title: title, Questions: questions}
	q.Place(p)
	require.NoError(t, db.Create(q).Error)
	return q
}

func CreateUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{Name: email, Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// ModulePlacement places an item directly in module m.
func ModulePlacement(m *model.Module) model.Placement {
	return model.Placement{Scope: model.ModuleScope(m.ID), CourseID: m.CourseID, ModuleID: m.ID}
}

// SubModulePlacement places an item in submodule s of module m.
func SubModulePlacement(m *model.Module, s *model.SubModule) model.Placement {
	id := s.ID
	return model.Placement{Scope: model.SubModuleScope(s.ID), CourseID: m.CourseID, ModuleID: m.ID, SubModuleID: &id}
}

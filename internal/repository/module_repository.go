package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) WithTx(tx *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: tx}
}

func (r *ModuleRepository) Create(ctx context.Context, module *model.Module) error {
	return r.DB.WithContext(ctx).Create(module).Error
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*model.Module, error) {
	var module model.Module
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&module).Error
	return &module, err
}

// FindByIDWithChildren loads the module's ordered submodules and its direct lessons and quizzes.
func (r *ModuleRepository) FindByIDWithChildren(ctx context.Context, id string) (*model.Module, error) {
	var module model.Module
	err := r.DB.WithContext(ctx).
		Preload("SubModules", orderBySiblingOrder).
		Preload("Lessons", directItems).
		Preload("Quizzes", directItems).
		Where("id = ?", id).
		First(&module).Error
	return &module, err
}

func (r *ModuleRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.WithContext(ctx).
		Preload("SubModules", orderBySiblingOrder).
		Where("course_id = ?", courseID).
		Order("`order` ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Update(ctx context.Context, module *model.Module) error {
	return r.DB.WithContext(ctx).Model(module).
		Select("title", "description", "updated_at").
		Updates(module).Error
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Module{}).Error
}

// CountContent counts lessons and quizzes anywhere under the module, submodules included.
// Submodule items carry their module id, so one filter covers the whole subtree.
func (r *ModuleRepository) CountContent(ctx context.Context, id string) (lessons, quizzes int64, err error) {
	db := r.DB.WithContext(ctx)
	if err = db.Model(&model.Lesson{}).Where("module_id = ?", id).Count(&lessons).Error; err != nil {
		return
	}
	err = db.Model(&model.Quiz{}).Where("module_id = ?", id).Count(&quizzes).Error
	return
}

func (r *ModuleRepository) DeleteSubModules(ctx context.Context, id string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("module_id = ?", id).Delete(&model.SubModule{})
	return res.RowsAffected, res.Error
}

func (r *ModuleRepository) NextOrder(ctx context.Context, courseID string) (int, error) {
	return NextOrder(ctx, r.DB, "modules", ModulesOfCourse(courseID))
}

func (r *ModuleRepository) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return ApplyOrder(ctx, r.DB, "modules", "order", updates)
}

func directItems(db *gorm.DB) *gorm.DB {
	return db.Where("sub_module_id IS NULL").Order("`order` ASC")
}

package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type SubModuleRepository struct {
	DB *gorm.DB
}

func NewSubModuleRepository(db *gorm.DB) *SubModuleRepository {
	return &SubModuleRepository{DB: db}
}

func (r *SubModuleRepository) WithTx(tx *gorm.DB) *SubModuleRepository {
	return &SubModuleRepository{DB: tx}
}

func (r *SubModuleRepository) Create(ctx context.Context, sub *model.SubModule) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *SubModuleRepository) FindByID(ctx context.Context, id string) (*model.SubModule, error) {
	var sub model.SubModule
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	return &sub, err
}

func (r *SubModuleRepository) FindByIDWithChildren(ctx context.Context, id string) (*model.SubModule, error) {
	var sub model.SubModule
	err := r.DB.WithContext(ctx).
		Preload("Lessons", orderBySiblingOrder).
		Preload("Quizzes", orderBySiblingOrder).
		Where("id = ?", id).
		First(&sub).Error
	return &sub, err
}

func (r *SubModuleRepository) ListByModule(ctx context.Context, moduleID string) ([]model.SubModule, error) {
	var subs []model.SubModule
	err := r.DB.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("`order` ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubModuleRepository) Update(ctx context.Context, sub *model.SubModule) error {
	return r.DB.WithContext(ctx).Model(sub).
		Select("title", "description", "updated_at").
		Updates(sub).Error
}

func (r *SubModuleRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.SubModule{}).Error
}

func (r *SubModuleRepository) CountContent(ctx context.Context, id string) (lessons, quizzes int64, err error) {
	db := r.DB.WithContext(ctx)
	if err = db.Model(&model.Lesson{}).Where("sub_module_id = ?", id).Count(&lessons).Error; err != nil {
		return
	}
	err = db.Model(&model.Quiz{}).Where("sub_module_id = ?", id).Count(&quizzes).Error
	return
}

func (r *SubModuleRepository) NextOrder(ctx context.Context, moduleID string) (int, error) {
	return NextOrder(ctx, r.DB, "sub_modules", SubModulesOfModule(moduleID))
}

func (r *SubModuleRepository) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return ApplyOrder(ctx, r.DB, "sub_modules", "order", updates)
}

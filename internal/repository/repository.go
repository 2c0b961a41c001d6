// Package repository is the data access layer. Every method runs on
// db.WithContext(ctx) so a request that goes away stops waiting for a pooled
// connection.
package repository

import (
	"gorm.io/gorm"

	"gwp-backend/internal/patch"
)

// applyUpdate issues one parameterised UPDATE for the row id of model.
// A missing row is reported as gorm.ErrRecordNotFound.
func applyUpdate(tx *gorm.DB, model interface{}, id uint, u *patch.Update) error {
	result := tx.Model(model).Where("id = ?", id).Updates(u.Map())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// deleteByID removes the row id of model, reporting a missing row as
// gorm.ErrRecordNotFound.
func deleteByID(tx *gorm.DB, model interface{}, id uint) error {
	result := tx.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// requirePlan fails with gorm.ErrRecordNotFound when the plan item is absent.
func requirePlan(tx *gorm.DB, planID uint) error {
	var count int64
	if err := tx.Table("plan_maestro").Where("id = ?", planID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

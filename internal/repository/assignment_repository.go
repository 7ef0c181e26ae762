package repository

import (
	"growthpath_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) FindByUserID(userID uint) ([]model.AssessmentAssignment, error) {
	var as []model.AssessmentAssignment
	err := r.DB.Preload("Questionnaire").
		Where("user_id = ?", userID).
		Order("display_order asc, id asc").
		Find(&as).Error
	return as, err
}

// ReplaceForUser swaps a user's whole plan in one transaction; assigning is
// always a full-plan operation on the admin side.
func (r *AssignmentRepository) ReplaceForUser(userID uint, assignments []model.AssessmentAssignment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ?", userID).
			Delete(&model.AssessmentAssignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})
}

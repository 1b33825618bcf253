package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
)

type Application struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID uint   `gorm:"not null;index"`
	User   User   `gorm:"constraint:OnDelete:CASCADE"`

	Sport          string  `gorm:"not null;index"`
	Status         string  `gorm:"not null;index"`
	PaymentStatus  *string
	MembershipType string `gorm:"not null"`
	MembershipFee  int64  `gorm:"not null"`

	// Serialised FormData.
	FormData []byte `gorm:"type:jsonb;not null"`

	SubmittedAt time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type ApplicationDAO struct {
	db *gorm.DB
}

func NewApplicationDAO(db *gorm.DB) *ApplicationDAO {
	return &ApplicationDAO{
		db: db,
	}
}

func (d *ApplicationDAO) Insert(ctx context.Context, app Application) (Application, error) {
	result := d.db.WithContext(ctx).Omit("User").Create(&app)
	if result.Error != nil {
		return Application{}, result.Error
	}

	return app, nil
}

func (d *ApplicationDAO) FindByID(ctx context.Context, id string) (Application, error) {
	var app Application

	result := d.db.WithContext(ctx).First(&app, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Application{}, ErrApplicationNotFound
		}

		return Application{}, result.Error
	}

	return app, nil
}

// FindByUserID returns the user's applications in submission order.
func (d *ApplicationDAO) FindByUserID(ctx context.Context, userID uint) ([]Application, error) {
	var apps []Application

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at ASC, id ASC").
		Find(&apps)
	if result.Error != nil {
		return nil, result.Error
	}

	return apps, nil
}

func (d *ApplicationDAO) FindAll(ctx context.Context) ([]Application, error) {
	var apps []Application

	result := d.db.WithContext(ctx).Order("submitted_at ASC, id ASC").Find(&apps)
	if result.Error != nil {
		return nil, result.Error
	}

	return apps, nil
}

// UpdateStatus writes status and payment status only; last write wins.
func (d *ApplicationDAO) UpdateStatus(ctx context.Context, app Application) (Application, error) {
	result := d.db.WithContext(ctx).
		Model(&Application{ID: app.ID}).
		Select("status", "payment_status", "updated_at").
		Updates(map[string]interface{}{
			"status":         app.Status,
			"payment_status": app.PaymentStatus,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return Application{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Application{}, ErrApplicationNotFound
	}

	return d.FindByID(ctx, app.ID)
}

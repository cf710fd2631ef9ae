package repository

import (
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id string) (model.User, error)
	Create(user model.User) (model.User, error)
	Save(user model.User) (model.User, error)
}

type user struct {
	db *gorm.DB
}

func newUserRepository(db *gorm.DB) UserRepository {
	return &user{
		db: db,
	}
}

func (u *user) GetByID(id string) (model.User, error) {
	var user model.User
	if err := u.db.First(&user, "id = ?", id).Error; err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}

func (u *user) Create(user model.User) (model.User, error) {
	if err := u.db.Create(&user).Error; err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}

func (u *user) Save(user model.User) (model.User, error) {
	if err := u.db.Save(&user).Error; err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}

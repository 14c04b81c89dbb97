package services

import (
	"errors"

	"github.com/KristjanKelk/wellness-app-sub002/config"
	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/utils"
)

func RegisterUser(email, password, firstName, lastName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Disabled:  false,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return err
	}

	// every user gets an empty health profile up front
	return config.DB.Create(&models.HealthProfile{UserID: user.ID}).Error
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", err
	}

	return token, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

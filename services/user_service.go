package services

import (
	"errors"
	"fmt"

	"github.com/KristjanKelk/wellness-app-sub002/config"
	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/utils"
)

type AccountInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"` // base64 data URI
}

func GetUserAccount(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"profile_picture": user.ProfilePicture,
	}, nil
}

func UpdateUserAccount(userID uint, input AccountInput) error {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, "profile-pictures/"+fmt.Sprint(user.ID))
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	return config.DB.Save(&user).Error
}

func DeactivateUser(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}

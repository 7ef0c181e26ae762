package service

import (
	"context"
	"errors"
	"fmt"
	"growthpath_backend/internal/model"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/util"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

type UpdateProfileInput struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Language string `json:"language" binding:"omitempty,oneof=fa en"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Language != "" {
		user.Language = input.Language
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image under a fresh name and records the URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(contentType, util.MimeImage) {
		contentType = util.MimeOctetStream
	}

	ext := filepath.Ext(filename)
	stored := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)

	url, err := s.Storage.Upload(ctx, stored, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Touch(userID uint) {
	_ = s.UserRepo.UpdateLastSeen(userID)
}

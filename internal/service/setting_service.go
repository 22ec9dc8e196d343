package service

import (
	"errors"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
)

// SettingService handles system setting operations
type SettingService struct {
	settingRepo *repository.SettingRepository
}

// NewSettingService creates a new SettingService
func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

// SetVendorToken stores the market data vendor API token.
func (s *SettingService) SetVendorToken(token string) error {
	return s.settingRepo.SetSecret(repository.SettingKeyVendorToken, token)
}

// VendorToken returns the stored vendor API token, or "" when none is set.
func (s *SettingService) VendorToken() (string, error) {
	token, err := s.settingRepo.GetSecret(repository.SettingKeyVendorToken)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", nil
	}
	return token, err
}

// HasVendorToken reports whether a vendor token is configured.
func (s *SettingService) HasVendorToken() (bool, error) {
	token, err := s.VendorToken()
	if err != nil {
		return false, err
	}
	return token != "", nil
}

package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"
	"skinconsult-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxCaseImageSize = 8 << 20

var (
	ErrImageTooLarge  = errors.New("case image exceeds the 8MB limit")
	ErrImageNotValid  = errors.New("case image must be a jpg or png file")
	ErrPredictionDown = errors.New("diagnosis service is unavailable, try again later")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type SkinCaseUsecase interface {
	AnalyzeImage(ctx context.Context, upload *Upload, notes string) (*dto.DiseaseCaseResponse, error)
	GetMyCases(ctx context.Context) (*dto.DiseaseCaseListResponse, error)
}

type skinCaseUsecase struct {
	log       *logrus.Logger
	caseRepo  repository.DiseaseCaseRepository
	store     service.AssetStore
	predictor service.Predictor
	baseURL   string
}

func NewSkinCaseUsecase(
	log *logrus.Logger,
	caseRepo repository.DiseaseCaseRepository,
	store service.AssetStore,
	predictor service.Predictor,
	baseURL string,
) SkinCaseUsecase {
	return &skinCaseUsecase{
		log:       log,
		caseRepo:  caseRepo,
		store:     store,
		predictor: predictor,
		baseURL:   baseURL,
	}
}

// AnalyzeImage stores a skin photo, scores it through the model server and
// opens a new case in AI_DONE.
func (u *skinCaseUsecase) AnalyzeImage(ctx context.Context, upload *Upload, notes string) (*dto.DiseaseCaseResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if upload.Size > maxCaseImageSize {
		return nil, ErrImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedImageExtensions[ext] {
		return nil, ErrImageNotValid
	}

	f, err := upload.Open()
	if err != nil {
		u.log.Warnf("Failed to open case image upload: %+v", err)
		return nil, err
	}
	defer f.Close()

	filename := uuid.NewString() + ext
	imagePath, err := u.store.Save(ctx, "cases", filename, f)
	if err != nil {
		u.log.Warnf("Failed to store case image: %+v", err)
		return nil, err
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	prediction, err := u.predictor.Predict(ctx, filename, f)
	if err != nil {
		u.log.Warnf("Prediction failed for case image %s: %+v", filename, err)
		return nil, ErrPredictionDown
	}

	diseaseCase := &entity.DiseaseCase{
		PatientID:   userID,
		ImagePath:   imagePath,
		AiDiagnosis: prediction.Diagnosis,
		Confidence:  prediction.Confidence,
		Notes:       notes,
		Status:      entity.CaseStatusAIDone,
	}
	if err := u.caseRepo.Create(ctx, diseaseCase); err != nil {
		u.log.Warnf("Failed to create disease case: %+v", err)
		return nil, err
	}

	return converter.DiseaseCaseToResponse(diseaseCase, u.baseURL), nil
}

// GetMyCases returns all cases of the logged-in patient
func (u *skinCaseUsecase) GetMyCases(ctx context.Context) (*dto.DiseaseCaseListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	cases, err := u.caseRepo.FindByPatientID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find cases for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.DiseaseCaseListResponse{
		Cases: converter.DiseaseCasesToResponses(cases, u.baseURL),
		Total: len(cases),
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
	"github.com/Dosada05/fantasy-league/storage"
)

type AddPlayerInput struct {
	TournamentID int                   `json:"tournament_id"`
	FranchiseID  int                   `json:"franchise_id"`
	Name         string                `json:"name"`
	Price        int                   `json:"price"`
	Position     models.PlayerPosition `json:"position"`
}

type PlayerService struct {
	playerRepo    repositories.PlayerRepository
	franchiseRepo repositories.FranchiseRepository
	uploader      storage.FileUploader
	logger        *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	franchiseRepo repositories.FranchiseRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *PlayerService {
	return &PlayerService{
		playerRepo:    playerRepo,
		franchiseRepo: franchiseRepo,
		uploader:      uploader,
		logger:        logger,
	}
}

// AddPlayer заводит игрока в пул турнира. Франшиза должна существовать
// и принадлежать тому же турниру.
func (s *PlayerService) AddPlayer(ctx context.Context, input AddPlayerInput) (*models.Player, error) {
	if input.Name == "" || input.Price <= 0 || input.Position == "" {
		return nil, ErrPlayerFieldsRequired
	}
	if !input.Position.Valid() {
		return nil, ErrPlayerPositionInvalid
	}

	franchise, err := s.franchiseRepo.GetByID(ctx, input.FranchiseID)
	if err != nil {
		if errors.Is(err, repositories.ErrFranchiseNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}
	if franchise.TournamentID != input.TournamentID {
		return nil, ErrFranchiseMismatch
	}

	player := &models.Player{
		TournamentID: input.TournamentID,
		FranchiseID:  input.FranchiseID,
		Name:         input.Name,
		Price:        input.Price,
		Position:     input.Position,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return nil, ErrPlayerNameConflict
		case errors.Is(err, repositories.ErrPlayerInvalidFranchise):
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}

	s.logger.Info("player added",
		slog.Int("player_id", player.ID),
		slog.Int("tournament_id", player.TournamentID),
		slog.String("position", string(player.Position)))

	return player, nil
}

func (s *PlayerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	matches, err := s.playerRepo.ListMatchPoints(ctx, id)
	if err != nil {
		return nil, err
	}
	player.Matches = matches
	s.attachPhotoURL(player)
	return player, nil
}

func (s *PlayerService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		s.attachPhotoURL(p)
	}
	return players, nil
}

// UploadPhoto загружает фото игрока в объектное хранилище и заменяет
// прежнее, если оно было.
func (s *PlayerService) UploadPhoto(ctx context.Context, playerID int, contentType string, reader io.Reader) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("players/%d/photo_%d%s", playerID, time.Now().UnixNano(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload player photo: %w", err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, playerID, &key); err != nil {
		// Запись не обновилась — подчищаем только что загруженный объект.
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to delete orphaned photo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}

	if oldKey != nil && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous photo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	player.PhotoKey = &key
	s.attachPhotoURL(player)
	return player, nil
}

// SetMatchPoints — ручная корректировка очков игрока за матч
// администратором. Перезаписывает существующее значение.
func (s *PlayerService) SetMatchPoints(ctx context.Context, playerID, matchNumber, points int) error {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return s.playerRepo.UpsertMatchPoints(ctx, models.PlayerMatchPoints{
		PlayerID:    playerID,
		MatchNumber: matchNumber,
		Points:      points,
	})
}

func (s *PlayerService) attachPhotoURL(p *models.Player) {
	if s.uploader == nil || p.PhotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*p.PhotoKey)
	p.PhotoURL = &url
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	}
	return "", ErrValidationFailed
}

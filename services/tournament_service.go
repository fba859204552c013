package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
	"github.com/Dosada05/fantasy-league/storage"
)

type CreateTournamentInput struct {
	Name               string           `json:"name"`
	Rules              string           `json:"rules"`
	RegistrationLimit  int              `json:"registration_limit"`
	PlayerLimitPerTeam int              `json:"player_limit_per_team"`
	KnockoutStart      time.Time        `json:"knockout_start"`
	SemifinalStart     time.Time        `json:"semifinal_start"`
	FinalStart         time.Time        `json:"final_start"`
	Franchises         []FranchiseInput `json:"franchises"`
	CreatedBy          int              `json:"-"`
}

type FranchiseInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type TournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	franchiseRepo  repositories.FranchiseRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	franchiseRepo repositories.FranchiseRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		franchiseRepo:  franchiseRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

// CreateWithFranchises создаёт турнир вместе со стартовым набором
// франшиз одной транзакцией.
func (s *TournamentService) CreateWithFranchises(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	tournament := &models.Tournament{
		Name:               strings.TrimSpace(input.Name),
		Rules:              input.Rules,
		RegistrationLimit:  input.RegistrationLimit,
		PlayerLimitPerTeam: input.PlayerLimitPerTeam,
		KnockoutStart:      input.KnockoutStart,
		SemifinalStart:     input.SemifinalStart,
		FinalStart:         input.FinalStart,
		CreatedBy:          input.CreatedBy,
	}

	if err := validateTournament(tournament); err != nil {
		return nil, err
	}
	if err := validateFranchiseBatch(input.Franchises); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		case errors.Is(err, repositories.ErrTournamentInvalidCreator):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tournament.Franchises = make([]models.Franchise, 0, len(input.Franchises))
	for _, fi := range input.Franchises {
		franchise := &models.Franchise{
			TournamentID: tournament.ID,
			Name:         strings.TrimSpace(fi.Name),
			Location:     fi.Location,
		}
		if err := s.franchiseRepo.Create(ctx, tx, franchise); err != nil {
			if errors.Is(err, repositories.ErrFranchiseNameConflict) {
				return nil, ErrFranchiseNameTaken
			}
			return nil, err
		}
		tournament.Franchises = append(tournament.Franchises, *franchise)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.String("name", tournament.Name),
		slog.Int("franchises", len(tournament.Franchises)))

	return tournament, nil
}

func (s *TournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

// GetOverview собирает карточку турнира: франшизы, команды и матчи
// грузятся параллельно.
func (s *TournamentService) GetOverview(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		franchises, err := s.franchiseRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load franchises: %w", err)
		}
		s.attachLogoURLs(franchises)
		tournament.Franchises = franchises
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gctx, nil, id)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		tournament.Teams = make([]models.Team, 0, len(teams))
		for _, t := range teams {
			tournament.Teams = append(tournament.Teams, *t)
		}
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		tournament.Matches = make([]models.MatchDetails, 0, len(matches))
		for _, m := range matches {
			tournament.Matches = append(tournament.Matches, *m)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.tournamentRepo.List(ctx, limit, offset)
}

func (s *TournamentService) ListByTeamOwner(ctx context.Context, userID int) ([]models.Tournament, error) {
	return s.tournamentRepo.ListByTeamOwner(ctx, userID)
}

func (s *TournamentService) ListByCreator(ctx context.Context, creatorID int) ([]models.Tournament, error) {
	return s.tournamentRepo.ListByCreator(ctx, creatorID)
}

func (s *TournamentService) ListFranchises(ctx context.Context, tournamentID int) ([]models.Franchise, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	franchises, err := s.franchiseRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.attachLogoURLs(franchises)
	return franchises, nil
}

// UploadFranchiseLogo загружает логотип франшизы в объектное хранилище
// и заменяет прежний, если он был.
func (s *TournamentService) UploadFranchiseLogo(ctx context.Context, franchiseID int, contentType string, reader io.Reader) (*models.Franchise, error) {
	franchise, err := s.franchiseRepo.GetByID(ctx, franchiseID)
	if err != nil {
		if errors.Is(err, repositories.ErrFranchiseNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("franchises/%d/logo_%d%s", franchiseID, time.Now().UnixNano(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload franchise logo: %w", err)
	}

	oldKey := franchise.LogoKey
	if err := s.franchiseRepo.UpdateLogoKey(ctx, franchiseID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to delete orphaned logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}

	if oldKey != nil && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous logo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	franchise.LogoKey = &key
	url := s.uploader.GetPublicURL(key)
	franchise.LogoURL = &url
	return franchise, nil
}

func (s *TournamentService) attachLogoURLs(franchises []models.Franchise) {
	if s.uploader == nil {
		return
	}
	for i := range franchises {
		if franchises[i].LogoKey != nil {
			url := s.uploader.GetPublicURL(*franchises[i].LogoKey)
			franchises[i].LogoURL = &url
		}
	}
}

func validateTournament(t *models.Tournament) error {
	if t.Name == "" || t.Rules == "" || t.RegistrationLimit <= 0 || t.PlayerLimitPerTeam <= 0 {
		return ErrTournamentFieldsRequired
	}
	if t.KnockoutStart.IsZero() || t.SemifinalStart.IsZero() || t.FinalStart.IsZero() {
		return ErrTournamentFieldsRequired
	}
	// Стадии обязаны идти в хронологическом порядке, иначе гейт правок
	// теряет смысл.
	if !t.KnockoutStart.Before(t.SemifinalStart) || !t.SemifinalStart.Before(t.FinalStart) {
		return ErrTournamentPhaseOrder
	}
	return nil
}

func validateFranchiseBatch(franchises []FranchiseInput) error {
	seen := make(map[string]struct{}, len(franchises))
	for _, f := range franchises {
		name := strings.TrimSpace(f.Name)
		if name == "" || f.Location == "" {
			return ErrFranchiseFieldsRequired
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return ErrFranchiseNameTaken
		}
		seen[key] = struct{}{}
	}
	return nil
}

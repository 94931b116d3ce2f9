package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"collab_backend/internal/algorithms"
	"collab_backend/internal/auth"
	"collab_backend/internal/instagram"
	"collab_backend/internal/logger"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services/dto"
	"collab_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	RegisterBrand(ctx context.Context, db *gorm.DB, req *dto.BrandRegisterRequest) (*dto.AuthResponse, error)
	RegisterInfluencer(ctx context.Context, db *gorm.DB, req *dto.InfluencerRegisterRequest) (*dto.AuthResponse, error)
	LoginBrand(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	LoginInfluencer(ctx context.Context, db *gorm.DB, req *dto.InfluencerLoginRequest) (*dto.AuthResponse, error)
	LoginAdmin(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	SetupAdmin(ctx context.Context, db *gorm.DB, req *dto.AdminSetupRequest) (*dto.AuthResponse, error)
	SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password string) error
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.MeResponse, error)

	InstagramAuthURL(state string) string
	InstagramCallback(ctx context.Context, db *gorm.DB, code string) (*dto.AuthResponse, error)
}

// InstagramAuthenticator - цепочка вызовов Instagram (см. instagram.Client)
type InstagramAuthenticator interface {
	AuthCodeURL(state string) string
	Authenticate(ctx context.Context, code string) (*instagram.Account, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokens      *auth.TokenManager
	instagram   InstagramAuthenticator
	pricing     Pricing
	setupKey    string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokens *auth.TokenManager,
	ig InstagramAuthenticator,
	pricing Pricing,
	setupKey string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		instagram:   ig,
		pricing:     pricing,
		setupKey:    setupKey,
	}
}

// RegisterBrand - регистрация бренда только с корпоративной почтой
func (s *AuthServiceImpl) RegisterBrand(ctx context.Context, db *gorm.DB, req *dto.BrandRegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidateBusinessEmail(req.Email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByEmail(tx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user := models.NewBrandUser(strings.TrimSpace(req.Name), models.BrandAccount{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Website:      strings.TrimSpace(req.Website),
		Industry:     strings.TrimSpace(req.Industry),
	})
	user.ProfileCompleted = true

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Brand registered", "user_id", user.ID, "company", user.CompanyName)
	return s.session(user, nil)
}

// RegisterInfluencer создает пользователя и пустой профиль со slug из username
func (s *AuthServiceImpl) RegisterInfluencer(ctx context.Context, db *gorm.DB, req *dto.InfluencerRegisterRequest) (*dto.AuthResponse, error) {
	username := normalizeUsername(req.InstagramUsername)
	if username == "" {
		return nil, apperrors.ValidationError(map[string]string{"instagramUsername": "This field is required"})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByInstagramUsername(tx, username); err == nil {
		return nil, apperrors.ErrUsernameAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if req.Email != "" {
		if _, err := s.userRepo.FindByEmail(tx, req.Email); err == nil {
			return nil, apperrors.ErrEmailAlreadyExists
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	user := models.NewInfluencerUser(strings.TrimSpace(req.Name), models.InfluencerAccount{
		InstagramUsername: username,
		Email:             strings.TrimSpace(req.Email),
	})
	user.PasswordHash = hash

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleRepoError(err)
	}

	slug, err := s.uniqueSlug(tx, slugFromUsername(username), "")
	if err != nil {
		return nil, err
	}
	profile := &models.InfluencerProfile{
		UserID:            user.ID,
		InstagramUsername: username,
		Slug:              slug,
		IsActive:          true,
	}
	if err := s.profileRepo.Create(tx, profile); err != nil {
		return nil, handleRepoError(err)
	}

	if err := commit(tx); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Influencer registered", "user_id", user.ID, "username", username)
	return s.session(user, profile)
}

func (s *AuthServiceImpl) LoginBrand(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, loginLookupError(err)
	}
	return s.login(ctx, db, user, models.UserRoleBrand, req.Password)
}

func (s *AuthServiceImpl) LoginInfluencer(ctx context.Context, db *gorm.DB, req *dto.InfluencerLoginRequest) (*dto.AuthResponse, error) {
	var (
		user *models.User
		err  error
	)
	if req.Email != "" {
		user, err = s.userRepo.FindByEmail(db, req.Email)
	} else {
		user, err = s.userRepo.FindByInstagramUsername(db, normalizeUsername(req.InstagramUsername))
	}
	if err != nil {
		return nil, loginLookupError(err)
	}
	return s.login(ctx, db, user, models.UserRoleInfluencer, req.Password)
}

func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, loginLookupError(err)
	}
	return s.login(ctx, db, user, models.UserRoleAdmin, req.Password)
}

// login: роль и пароль проверяются до статуса, чтобы не раскрывать существование аккаунта
func (s *AuthServiceImpl) login(ctx context.Context, db *gorm.DB, user *models.User, role models.UserRole, password string) (*dto.AuthResponse, error) {
	if user.Role != role || !auth.CheckPasswordHash(password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "user_id", user.ID, "expected_role", role)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	now := nowFunc()
	if err := s.userRepo.UpdateLastLogin(db, user.ID, now); err != nil {
		return nil, handleRepoError(err)
	}
	user.LastLogin = &now

	var profile *models.InfluencerProfile
	if role == models.UserRoleInfluencer {
		p, err := s.profileRepo.FindByUserID(db, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		profile = p
	}

	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID, "role", role)
	return s.session(user, profile)
}

// SetupAdmin - одноразовое создание первого администратора по setup key
func (s *AuthServiceImpl) SetupAdmin(ctx context.Context, db *gorm.DB, req *dto.AdminSetupRequest) (*dto.AuthResponse, error) {
	if s.setupKey == "" {
		return nil, apperrors.NewForbiddenError("Admin setup is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(s.setupKey)) != 1 {
		return nil, apperrors.NewForbiddenError("Invalid setup key")
	}

	user, err := s.createFirstAdmin(db, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	logger.AuditLog(user.ID, "admin_setup", "user", user.ID)
	logger.CtxInfo(ctx, "First admin created via setup", "user_id", user.ID)
	return s.session(user, nil)
}

// SeedFirstAdmin вызывается при старте. Если админ уже есть, ничего не делает.
func (s *AuthServiceImpl) SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	user, err := s.createFirstAdmin(db, "Administrator", email, password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAdminAlreadyExists) {
			return nil
		}
		return err
	}
	logger.CtxInfo(ctx, "First admin seeded from config", "user_id", user.ID, "email", user.GetEmail())
	return nil
}

func (s *AuthServiceImpl) createFirstAdmin(db *gorm.DB, name, email, password string) (*models.User, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	exists, err := s.userRepo.ExistsByRole(tx, models.UserRoleAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAdminAlreadyExists
	}
	if _, err := s.userRepo.FindByEmail(tx, email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user := models.NewAdminUser(strings.TrimSpace(name), models.AdminAccount{
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid or expired session")
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}
	return &dto.MeResponse{
		User:    user,
		Profile: s.pricing.ProfileResponse(user.InfluencerProfile),
	}, nil
}

func (s *AuthServiceImpl) InstagramAuthURL(state string) string {
	return s.instagram.AuthCodeURL(state)
}

// InstagramCallback: сначала вся цепочка внешних вызовов, затем одна транзакция.
// Сбой на любом этапе не оставляет наполовину созданного пользователя.
func (s *AuthServiceImpl) InstagramCallback(ctx context.Context, db *gorm.DB, code string) (*dto.AuthResponse, error) {
	account, err := s.instagram.Authenticate(ctx, code)
	if err != nil {
		stage := instagram.StageOf(err)
		status := http.StatusInternalServerError
		if stage == instagram.StageTokenExchange {
			status = http.StatusBadRequest
		}
		logger.CtxWithError(ctx, "Instagram authentication failed", err, "stage", stage)
		return nil, apperrors.NewUpstreamError(stage, status, err)
	}

	ig := account.Profile
	username := normalizeUsername(ig.Username)
	if username == "" {
		return nil, apperrors.NewUpstreamError(instagram.StageProfileFetch, http.StatusInternalServerError,
			errors.New("instagram profile has no username"))
	}

	avgLikes, avgComments := instagram.Averages(account.Media)
	engagement, err := algorithms.EngagementRate(avgLikes, avgComments, float64(ig.FollowersCount))
	if err != nil {
		return nil, err
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := s.findInstagramUser(tx, ig.ID, username)
	if err != nil {
		return nil, err
	}

	now := nowFunc()
	var profile *models.InfluencerProfile

	if user == nil {
		name := strings.TrimSpace(ig.Name)
		if name == "" {
			name = username
		}
		user = models.NewInfluencerUser(name, models.InfluencerAccount{
			InstagramUsername: username,
			InstagramUserID:   ig.ID,
		})
		user.InstagramAccessToken = account.AccessToken
		if err := s.userRepo.Create(tx, user); err != nil {
			return nil, handleRepoError(err)
		}
	} else {
		if user.Role != models.UserRoleInfluencer {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		if !user.IsActive {
			return nil, apperrors.ErrAccountInactive
		}
		user.InstagramUsername = &username
		if ig.ID != "" {
			igID := ig.ID
			user.InstagramUserID = &igID
		}
		user.InstagramAccessToken = account.AccessToken
		if err := s.userRepo.Save(tx, user); err != nil {
			return nil, handleRepoError(err)
		}

		profile, err = s.profileRepo.FindByUserID(tx, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	if profile == nil {
		slug, err := s.uniqueSlug(tx, slugFromUsername(username), "")
		if err != nil {
			return nil, err
		}
		profile = &models.InfluencerProfile{
			UserID:   user.ID,
			Slug:     slug,
			IsActive: true,
		}
	}

	profile.InstagramUsername = username
	profile.ProfilePictureURL = ig.ProfilePictureURL
	profile.Followers = ig.FollowersCount
	profile.Following = ig.FollowsCount
	profile.MediaCount = ig.MediaCount
	profile.AvgLikes = avgLikes
	profile.AvgComments = avgComments
	profile.EngagementRate = engagement
	profile.StatsSyncedAt = &now
	if profile.Bio == "" {
		profile.Bio = ig.Biography
	}

	if profile.ID == "" {
		err = s.profileRepo.Create(tx, profile)
	} else {
		err = s.profileRepo.Save(tx, profile)
	}
	if err != nil {
		return nil, handleRepoError(err)
	}

	if err := s.userRepo.UpdateLastLogin(tx, user.ID, now); err != nil {
		return nil, handleRepoError(err)
	}
	user.LastLogin = &now

	if err := commit(tx); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Instagram login", "user_id", user.ID, "username", username, "followers", ig.FollowersCount)
	return s.session(user, profile)
}

// findInstagramUser ищет по id аккаунта Instagram, затем по username. nil - новый пользователь.
func (s *AuthServiceImpl) findInstagramUser(db *gorm.DB, igUserID, username string) (*models.User, error) {
	if igUserID != "" {
		user, err := s.userRepo.FindByInstagramUserID(db, igUserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}
	user, err := s.userRepo.FindByInstagramUsername(db, username)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, nil
	}
	return nil, apperrors.InternalError(err)
}

func (s *AuthServiceImpl) session(user *models.User, profile *models.InfluencerProfile) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(auth.ClaimsForUser(user))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		User:    user,
		Profile: s.pricing.ProfileResponse(profile),
		Token:   token,
	}, nil
}

// uniqueSlug добавляет числовой суффикс, пока slug занят
func (s *AuthServiceImpl) uniqueSlug(db *gorm.DB, base, exceptProfileID string) (string, error) {
	return uniqueSlug(db, s.profileRepo, base, exceptProfileID)
}

func uniqueSlug(db *gorm.DB, repo repositories.ProfileRepository, base, exceptProfileID string) (string, error) {
	candidate := base
	for i := 2; i < 1000; i++ {
		taken, err := repo.SlugTaken(db, candidate, exceptProfileID)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
	return "", apperrors.NewConflictError("profile", "Could not allocate a unique slug")
}

func loginLookupError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.InternalError(err)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@"))
}

// slugFromUsername: "Jane.Doe_" -> "jane-doe"
func slugFromUsername(username string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(username), "-"), "-")
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	if slug == "" {
		slug = "creator"
	}
	return slug
}

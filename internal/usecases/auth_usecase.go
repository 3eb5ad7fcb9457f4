package usecases

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/domain/repositories"
	"payzen.backend/internal/infrastructure/blockchain"
	"payzen.backend/pkg/crypto"
	"payzen.backend/pkg/jwt"
	"payzen.backend/pkg/utils"
)

// ChallengePrefix is the fixed message template wallets sign. It is part of
// the external interface; frontends build the same string verbatim.
const ChallengePrefix = "Sign this message to authenticate: "

var (
	noncePattern    = regexp.MustCompile(`^[0-9a-f]{64}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
)

// AuthUsecase handles the wallet challenge/response protocol and user
// registration
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	nonceRepo  repositories.NonceRepository
	jwtService *jwt.JWTService
	nonceTTL   time.Duration
	now        func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	nonceRepo repositories.NonceRepository,
	jwtService *jwt.JWTService,
	nonceTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		nonceRepo:  nonceRepo,
		jwtService: jwtService,
		nonceTTL:   nonceTTL,
		now:        time.Now,
	}
}

// Challenge issues a single-use nonce for the wallet and returns the exact
// message the wallet must sign
func (u *AuthUsecase) Challenge(ctx context.Context, walletAddress string) (string, error) {
	if !blockchain.IsValidAddress(walletAddress) {
		return "", domainerrors.ErrInvalidAddress
	}

	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return "", err
	}

	now := u.now()
	record := &entities.AuthNonce{
		ID:            utils.GenerateUUIDv7(),
		WalletAddress: blockchain.NormalizeAddress(walletAddress),
		Nonce:         nonce,
		ExpiresAt:     now.Add(u.nonceTTL),
		CreatedAt:     now,
	}
	if err := u.nonceRepo.Create(ctx, record); err != nil {
		return "", err
	}

	return ChallengePrefix + nonce, nil
}

// Authenticate verifies a signed challenge. Every verification failure is
// fail-closed Valid=false; Valid=true with a nil User means the signature
// checked out but the wallet has no account yet.
func (u *AuthUsecase) Authenticate(ctx context.Context, input *entities.LoginInput) (*entities.AuthResult, error) {
	if !blockchain.IsValidAddress(input.WalletAddress) {
		return &entities.AuthResult{Valid: false}, nil
	}
	wallet := blockchain.NormalizeAddress(input.WalletAddress)

	if !crypto.VerifyPersonalSignature(input.Message, input.Signature, wallet) {
		return &entities.AuthResult{Valid: false}, nil
	}

	nonce, ok := parseChallenge(input.Message)
	if !ok {
		return &entities.AuthResult{Valid: false}, nil
	}

	consumed, err := u.nonceRepo.Consume(ctx, wallet, nonce, u.now())
	if err != nil {
		return nil, err
	}
	if !consumed {
		return &entities.AuthResult{Valid: false}, nil
	}

	user, err := u.userRepo.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.AuthResult{Valid: true}, nil
		}
		return nil, err
	}
	return &entities.AuthResult{Valid: true, User: user}, nil
}

// Login runs Authenticate and turns the outcome into a session. Invalid
// auth and missing registration are distinct errors so the handler can
// answer 401 and 404 respectively.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	result, err := u.Authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, domainerrors.ErrInvalidSignature
	}
	if result.User == nil {
		return nil, domainerrors.ErrUserNotRegistered
	}

	token, err := u.jwtService.GenerateToken(result.User.ID, result.User.WalletAddress)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: result.User}, nil
}

// Register creates a user for a wallet and returns a session token
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	if !blockchain.IsValidAddress(input.WalletAddress) {
		return nil, domainerrors.ErrInvalidAddress
	}
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if !usernamePattern.MatchString(username) {
		return nil, domainerrors.BadRequest("username must be 3-30 characters of letters, digits or underscore")
	}

	wallet := blockchain.NormalizeAddress(input.WalletAddress)

	// One lookup covers both collision cases; the error names the field
	// that collided.
	existing, err := u.userRepo.FindCollision(ctx, wallet, username)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.WalletAddress == wallet {
			return nil, domainerrors.ErrWalletRegistered
		}
		return nil, domainerrors.ErrUsernameTaken
	}

	user := &entities.User{
		ID:            utils.GenerateUUIDv7(),
		WalletAddress: wallet,
		FullName:      strings.TrimSpace(input.FullName),
		Username:      username,
		CreatedAt:     u.now(),
	}
	if input.BusinessName != "" {
		user.BusinessName.SetValid(input.BusinessName)
	}
	if input.BusinessType != "" {
		user.BusinessType.SetValid(input.BusinessType)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.WalletAddress)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: user}, nil
}

// UsernameAvailable reports whether the username is free, case-insensitive
func (u *AuthUsecase) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := u.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// GetUserByWallet fetches the profile for an authenticated wallet
func (u *AuthUsecase) GetUserByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	return u.userRepo.GetByWallet(ctx, blockchain.NormalizeAddress(walletAddress))
}

// parseChallenge extracts the nonce from a signed message. The template
// match is exact: prefix plus 64 lowercase hex characters, nothing else.
func parseChallenge(message string) (string, bool) {
	if !strings.HasPrefix(message, ChallengePrefix) {
		return "", false
	}
	nonce := message[len(ChallengePrefix):]
	if !noncePattern.MatchString(nonce) {
		return "", false
	}
	return nonce, true
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"wanderplan/internal/models/db_models"
	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/internal/repositories"
	"wanderplan/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	GetAccount(ctx context.Context, id string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenIssuer
	logger      *zap.Logger
	admins      map[string]bool
}

// NewAccountService builds the account service. Registrations whose email is listed in
// adminEmails receive the admin role.
func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, logger *zap.Logger, adminEmails []string) AccountServiceInterface {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[normalizeEmail(e)] = true
	}
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger,
		admins:      admins,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.logger.Error("account lookup failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("token signing failed", zap.String("account_id", account.ID.String()), zap.Error(err))
		return nil, utils.ErrInvalidCredentials
	}

	a.logger.Debug("login completed", zap.String("account_id", account.ID.String()), zap.Duration("took", time.Since(startTime)))
	return &response_models.AccountLoginResponse{Token: token}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("account lookup failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidInput) {
			return nil, err
		}
		a.logger.Error("password hashing failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	role := db_models.RoleUser
	if a.admins[email] {
		role = db_models.RoleAdmin
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := a.accountRepo.InsertTx(newAccount, ctx); err != nil {
		a.logger.Error("account insert failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	a.logger.Info("account created", zap.String("account_id", newAccount.ID.String()), zap.String("role", role))
	return toAccountResponse(newAccount), nil
}

func (a *AccountService) GetAccount(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func toAccountResponse(a *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}

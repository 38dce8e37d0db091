// Package impl contains the implementations of the application's use cases.
package impl

import (
	"context"
	"log/slog"

	"rideauth/internal/domain/entity"
	domainerrors "rideauth/internal/domain/errors"
	"rideauth/internal/domain/repository"
	"rideauth/internal/domain/service"
	"rideauth/internal/usecase"

	"github.com/pkg/errors"
)

// dummyHash is a valid bcrypt digest of a random string. When a signin
// targets an unknown email the password is still checked against it, so the
// unknown-email and wrong-password paths cost the same order of magnitude.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager  repository.TransactionManager
	passengers repository.PassengerRepository
	hasher     service.PasswordHasher
	tokens     service.TokenService
	logger     *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all
// dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	passengers repository.PassengerRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:  txManager,
		passengers: passengers,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
	}
}

// Signup orchestrates the passenger registration process. The password is
// hashed before anything touches the repository boundary, and the
// existence check plus insert run inside one transaction so a concurrent
// signup with the same email surfaces as a conflict.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.logger.Info("Starting passenger signup", "email", input.Email)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during signup", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("signup failed")
	}

	var registered *entity.Passenger

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		passengerRepo := repoFactory.PassengerRepo()

		_, err := passengerRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("signup failed")
		}
		if !errors.Is(err, repository.ErrPassengerNotFound) {
			return errors.Wrap(err, "failed to check existing passenger")
		}

		newPassenger := &entity.Passenger{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			PhoneNumber:  input.PhoneNumber,
		}
		if err := passengerRepo.Create(ctx, newPassenger); err != nil {
			return errors.WithStack(err)
		}
		registered = newPassenger

		return nil
	})

	if err != nil {
		srv.logger.Warn("Passenger signup failed", "error", err, "email", input.Email)

		return nil, err
	}
	srv.logger.Debug("Passenger signed up", "passengerID", registered.ID)

	return &usecase.SignupOutput{Passenger: usecase.NewPassengerOutput(registered)}, nil
}

// Signin verifies the submitted credential and, on success, mints a session
// token with the passenger's email as its subject.
func (srv *authService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.SigninOutput, error) {
	srv.logger.Debug("Starting passenger signin", "email", input.Email)

	passenger, err := srv.authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokens.Issue(passenger.Email, nil, srv.tokens.TTL())
	if err != nil {
		srv.logger.Error("Failed to issue session token", "error", err)

		return nil, errors.Wrap(err, "failed to issue session token")
	}
	srv.logger.Info("Passenger signed in", "passengerID", passenger.ID)

	return &usecase.SigninOutput{Token: token}, nil
}

// authenticate resolves the passenger record and checks the password.
// Internally the unknown-email and wrong-password outcomes stay distinct
// (log lines), but both return the same ErrInvalidCredentials so the caller
// cannot probe for account existence.
func (srv *authService) authenticate(ctx context.Context, email, password string) (*entity.Passenger, error) {
	passenger, err := srv.passengers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			// Burn a hash comparison anyway; see dummyHash.
			srv.hasher.Check(password, dummyHash)
			srv.logger.Debug("Signin for unknown email", "email", email)

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("signin failed")
		}
		srv.logger.Error("Identity store lookup failed", "error", err)

		return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage("signin failed")
	}

	if !srv.hasher.Check(password, passenger.PasswordHash) {
		srv.logger.Debug("Signin with wrong password", "passengerID", passenger.ID)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("signin failed")
	}

	return passenger, nil
}

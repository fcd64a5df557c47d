package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/shafe/handcraft/internal/common"
	"github.com/shafe/handcraft/internal/config"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/repository"
	"github.com/shafe/handcraft/user/internal/otel"
	"github.com/shafe/handcraft/user/pkg/request"
	"github.com/shafe/handcraft/user/pkg/response"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

type UserService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	secretKey string
	oauth     *oauth2.Config
}

func NewUserService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	secretKey string,
	oauthConfig config.Oauth,
) UserService {
	return UserService{
		pool:      pool,
		queries:   queries,
		secretKey: secretKey,
		oauth: &oauth2.Config{
			ClientID:     oauthConfig.ClientID,
			ClientSecret: oauthConfig.ClientSecret,
			RedirectURL:  oauthConfig.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		},
	}
}

func (svc UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking existing email").Logger()
	_, err := svc.queries.FindUserByEmail(c, param.Email)
	if err == nil {
		err = commonErrors.ErrEmailTaken
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("email is available")

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	user, err := svc.queries.InsertUser(c, repository.InsertUserParams{
		Username: param.Username,
		Email:    param.Email,
		Password: string(hashed),
		Role:     common.RoleCustomer,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("inserted user")

	return user.Response(), nil
}

func (svc UserService) Login(
	c context.Context,
	param request.Login,
) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by email").Logger()
	user, err := svc.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrUserNotFound
		} else {
			err = fmt.Errorf("failed finding user by email with error=%w", err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("found user by email")

	if user.IsBlocked {
		err = commonErrors.ErrUserBlocked
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = commonErrors.ErrPasswordMismatch
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "issuing token").Logger()
	token, err := common.IssueToken(c, svc.secretKey, user.ID, user.Role)
	if err != nil {
		err = fmt.Errorf("failed issuing token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("issued token")

	return response.Login{Token: token, User: user.Response()}, nil
}

func (svc UserService) FindUserById(
	c context.Context,
	userID uuid.UUID,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, userID.String()).
		Logger()

	user, err := svc.queries.FindUserById(c, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrUserNotFound
		} else {
			err = fmt.Errorf("failed finding user by id=%s with error=%w", userID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user by id")
	return user.Response(), nil
}

// GoogleLoginURL builds the consent screen redirect for the given
// anti-forgery state.
func (svc UserService) GoogleLoginURL(state string) string {
	return svc.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback exchanges the authorization code, loads the Google
// profile and upserts a customer account keyed by its email.
func (svc UserService) GoogleCallback(
	c context.Context,
	code string,
) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService GoogleCallback")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService GoogleCallback").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "exchanging authorization code").Logger()
	token, err := svc.oauth.Exchange(c, code)
	if err != nil {
		err = fmt.Errorf("failed exchanging authorization code with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("exchanged authorization code")

	logger = logger.With().Str(log.KeyProcess, "fetching google profile").Logger()
	resp, err := svc.oauth.Client(c, token).Get(googleUserInfoURL)
	if err != nil {
		err = fmt.Errorf("failed fetching google profile with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("failed fetching google profile with status=%d", resp.StatusCode)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	info := googleUserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		err = fmt.Errorf("failed decoding google profile with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeyEmail, info.Email).Logger()
	logger.Info().Msg("fetched google profile")

	logger = logger.With().Str(log.KeyProcess, "upserting oauth user").Logger()
	user, err := svc.queries.UpsertOauthUser(c, repository.UpsertOauthUserParams{
		Username:      info.Name,
		Email:         info.Email,
		Role:          common.RoleCustomer,
		OauthProvider: "google",
		OauthSubject:  info.ID,
	})
	if err != nil {
		err = fmt.Errorf("failed upserting oauth user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("upserted oauth user")

	if user.IsBlocked {
		err = commonErrors.ErrUserBlocked
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}

	sessionToken, err := common.IssueToken(c, svc.secretKey, user.ID, user.Role)
	if err != nil {
		err = fmt.Errorf("failed issuing token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	return response.Login{Token: sessionToken, User: user.Response()}, nil
}

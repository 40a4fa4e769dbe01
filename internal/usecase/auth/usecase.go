package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"peerlend-api/internal/domain/session"
	"peerlend-api/internal/domain/user"
	"peerlend-api/pkg/id"
	"peerlend-api/pkg/validate"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers unknown email and wrong password alike, so a
// login probe cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUnauthenticated: the presented token does not resolve to a user.
var ErrUnauthenticated = errors.New("unauthenticated")

type Usecase struct {
	users    user.Repository
	sessions session.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewUsecase(users user.Repository, sessions session.Store, secret string, tokenTTL time.Duration) *Usecase {
	return &Usecase{users: users, sessions: sessions, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AuthDTO, error) {
	if fields := validate.Struct(in); fields != nil {
		return nil, &validate.Error{Fields: fields}
	}

	if _, err := u.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, &validate.Error{Fields: map[string]string{
			"email": "has already been taken",
		}}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usr := &user.User{Name: in.Name, Email: in.Email, Password: string(hash)}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}

	return u.issue(ctx, usr)
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*AuthDTO, error) {
	if fields := validate.Struct(in); fields != nil {
		return nil, &validate.Error{Fields: fields}
	}

	usr, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(ctx, usr)
}

// Logout revokes the session behind the presented token. Revoking an
// already-dead token is fine; the outcome is the same.
func (u *Usecase) Logout(ctx context.Context, rawToken string) error {
	tokenID, _, err := u.parse(rawToken)
	if err != nil {
		return ErrUnauthenticated
	}
	return u.sessions.Revoke(ctx, tokenID)
}

// Authenticate resolves request credentials to a stable user id, or reports
// the caller as unauthenticated. The JWT must verify and its session must
// still exist server-side.
func (u *Usecase) Authenticate(ctx context.Context, rawToken string) (uint64, error) {
	tokenID, userID, err := u.parse(rawToken)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	stored, err := u.sessions.Get(ctx, tokenID)
	if err != nil || stored != userID {
		return 0, ErrUnauthenticated
	}
	return userID, nil
}

func (u *Usecase) issue(ctx context.Context, usr *user.User) (*AuthDTO, error) {
	tokenID := id.NewID32()
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(usr.ID, 10),
		"jti": tokenID,
		"iat": now.Unix(),
		"exp": now.Add(u.tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, tokenID, usr.ID, u.tokenTTL); err != nil {
		return nil, err
	}
	return &AuthDTO{
		User:  UserDTO{ID: usr.ID, Name: usr.Name, Email: usr.Email},
		Token: signed,
	}, nil
}

func (u *Usecase) parse(rawToken string) (tokenID string, userID uint64, err error) {
	tkn, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", 0, ErrUnauthenticated
	}
	claims, ok := tkn.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, ErrUnauthenticated
	}
	tokenID, _ = claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	userID, convErr := strconv.ParseUint(sub, 10, 64)
	if tokenID == "" || convErr != nil {
		return "", 0, ErrUnauthenticated
	}
	return tokenID, userID, nil
}

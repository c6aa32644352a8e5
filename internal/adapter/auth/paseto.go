package auth

import (
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
)

type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

func New() (port.TokenService, error) {
	parser := paseto.NewParser()
	key := paseto.NewV4SymmetricKey()

	s := PasetoToken{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(actor *domain.Actor) (string, error) {
	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(1000 * time.Hour))

	err := token.Set("actor", actor)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*domain.Actor, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	actor := domain.Actor{}
	err = parsedToken.Get("actor", &actor)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &actor, nil
}

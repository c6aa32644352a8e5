package port

import "github.com/vperfumes/ordertrack/internal/core/domain"

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(actor *domain.Actor) (string, error)
	VerifyToken(token string) (*domain.Actor, error)
}

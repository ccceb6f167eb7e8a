package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/application/ports"
	"github.com/almacen-pro/almacen-api/internal/domain"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
	"github.com/almacen-pro/almacen-api/pkg/jwt"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

// Config parámetros del flujo de magic link y sesión.
type Config struct {
	JWTSecret  string
	JWTIssuer  string
	SessionMin int
	TokenTTL   time.Duration // vigencia del token de un solo uso
	BaseURL    string        // base pública para armar el enlace
}

// AuthUseCase emite, valida y barre tokens de acceso de un solo uso, y
// resuelve roles contra el directorio.
type AuthUseCase struct {
	tokens    repository.TokenRepository
	directory repository.DirectoryRepository
	mailer    ports.Mailer
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tokens repository.TokenRepository,
	directory repository.DirectoryRepository,
	mailer ports.Mailer,
	cfg Config,
	log *logger.Logger,
) *AuthUseCase {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 15 * time.Minute
	}
	return &AuthUseCase{
		tokens:    tokens,
		directory: directory,
		mailer:    mailer,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock fija el reloj del caso de uso. Sólo para tests.
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// ResolveRole resuelve email → rol contra el directorio. Cualquier fallo de
// lectura se loguea y cuenta como "sin rol": default fail-closed deliberado,
// nunca se distingue hacia el caller.
func (uc *AuthUseCase) ResolveRole(email string) string {
	role, err := uc.directory.RoleByEmail(email)
	if err != nil {
		uc.log.Warn().Err(err).Msg("lectura del directorio falló, se trata como sin rol")
		return ""
	}
	return role
}

// Issue genera un token opaco único con vigencia TokenTTL y envía el enlace.
// Para un email no registrado no se emite nada, pero el resultado es el mismo
// nil que en el caso registrado: el endpoint responde siempre el mensaje
// genérico y no filtra existencia de cuentas.
func (uc *AuthUseCase) Issue(ctx context.Context, email string) error {
	if uc.ResolveRole(email) == "" {
		return nil
	}
	token := &entity.LoginToken{
		Token:     uuid.NewString(),
		Email:     email,
		ExpiresAt: uc.now().Add(uc.cfg.TokenTTL),
	}
	if err := uc.tokens.Append(token); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/api/auth/validate?token=%s", uc.cfg.BaseURL, token.Token)
	return uc.mailer.Send(ctx, ports.Message{
		To:      []string{email},
		Subject: "Tu enlace de acceso",
		HTML: fmt.Sprintf(
			"<p>Entra al almacén con este enlace (vence en %d minutos y sirve una sola vez):</p><p><a href=%q>%s</a></p>",
			int(uc.cfg.TokenTTL.Minutes()), link, link,
		),
	})
}

// Validate valida un token de un solo uso. Tres salidas: inexistente,
// vencido (la fila queda para el barrido), o válido. En el caso válido la
// fila se borra de inmediato como efecto secundario; el fallo del borrado se
// loguea y jamás bloquea la sesión. El rol se re-resuelve por si cambió desde
// la emisión: sin rol ahora = Forbidden.
func (uc *AuthUseCase) Validate(ctx context.Context, token string) (*dto.SessionResponse, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	row, err := uc.tokens.Find(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrTokenInvalid
	}
	if row.Expired(uc.now()) {
		return nil, domain.ErrTokenInvalid
	}
	// Un solo uso: borrar ya. El error no se propaga, sólo se observa.
	if err := uc.tokens.Delete(token); err != nil {
		uc.log.Error().Err(err).Str("email", row.Email).Msg("no se pudo borrar el token consumido")
	}
	role := uc.ResolveRole(row.Email)
	if role == "" {
		return nil, domain.ErrForbidden
	}
	session, err := jwt.Generate(uc.cfg.JWTSecret, row.Email, role, uc.cfg.JWTIssuer, uc.cfg.SessionMin)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: session, Email: row.Email, Role: role}, nil
}

// Sweep retira todos los tokens vencidos: conserva sólo las filas con
// expiresAt > now, en su orden original, y reescribe la tabla completa.
// Devuelve cuántas filas se retiraron.
func (uc *AuthUseCase) Sweep(ctx context.Context) (int, error) {
	all, err := uc.tokens.ListAll()
	if err != nil {
		return 0, err
	}
	now := uc.now()
	survivors := make([]entity.LoginToken, 0, len(all))
	for _, t := range all {
		if now.Before(t.ExpiresAt) {
			survivors = append(survivors, t)
		}
	}
	removed := len(all) - len(survivors)
	if removed == 0 {
		return 0, nil
	}
	if err := uc.tokens.ReplaceAll(survivors); err != nil {
		return 0, err
	}
	return removed, nil
}

// RunSweeper corre Sweep en intervalos fijos hasta que el contexto se cancele.
// El barrido es calendarizado, no lo dispara cada validación.
func (uc *AuthUseCase) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := uc.Sweep(ctx)
			if err != nil {
				uc.log.Error().Err(err).Msg("barrido de tokens falló")
				continue
			}
			if removed > 0 {
				uc.log.Info().Int("removed", removed).Msg("tokens vencidos retirados")
			}
		}
	}
}

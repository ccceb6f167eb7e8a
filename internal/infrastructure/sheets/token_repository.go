package sheets

import (
	"strings"
	"time"

	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
)

var (
	_ repository.TokenRepository     = (*TokenRepo)(nil)
	_ repository.DirectoryRepository = (*DirectoryRepo)(nil)
)

// TokenRepo tabla de tokens de un solo uso sobre la hoja Tokens.
// Vence se guarda en RFC3339; una fecha no parseable cuenta como vencida.
type TokenRepo struct {
	book *Workbook
}

// NewTokenRepository construye el adaptador de tokens.
func NewTokenRepository(book *Workbook) *TokenRepo {
	return &TokenRepo{book: book}
}

func tokenRow(t *entity.LoginToken) []interface{} {
	return []interface{}{t.Token, t.Email, t.ExpiresAt.Format(time.RFC3339)}
}

// Append agrega el token al final de la tabla.
func (r *TokenRepo) Append(t *entity.LoginToken) error {
	return r.book.Append(SheetTokens, [][]interface{}{tokenRow(t)})
}

// ListAll devuelve todos los tokens en orden de hoja.
func (r *TokenRepo) ListAll() ([]entity.LoginToken, error) {
	v, err := r.book.HeaderView(SheetTokens)
	if err != nil {
		return nil, err
	}
	out := make([]entity.LoginToken, 0, len(v.Data))
	for _, row := range v.Data {
		tok := v.Get(row, "Token", "")
		if tok == "" {
			continue
		}
		expires, err := time.Parse(time.RFC3339, v.Get(row, "Vence", ""))
		if err != nil {
			expires = time.Time{} // ilegible = vencido desde siempre
		}
		out = append(out, entity.LoginToken{
			Token:     tok,
			Email:     v.Get(row, "Email", ""),
			ExpiresAt: expires,
		})
	}
	return out, nil
}

// Find escaneo lineal por la primera fila con ese token. nil si no está.
func (r *TokenRepo) Find(token string) (*entity.LoginToken, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Token == token {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Delete elimina la fila del token desplazando las siguientes hacia arriba.
func (r *TokenRepo) Delete(token string) error {
	v, err := r.book.HeaderView(SheetTokens)
	if err != nil {
		return err
	}
	for i, row := range v.Data {
		if v.Get(row, "Token", "") == token {
			return r.book.DeleteRows(SheetTokens, i+2, i+2)
		}
	}
	return nil
}

// ReplaceAll reescribe la tabla: header intacto, sobrevivientes en el orden
// recibido, y el resto de filas viejas blanqueadas en la misma pasada.
func (r *TokenRepo) ReplaceAll(tokens []entity.LoginToken) error {
	rows := make([][]interface{}, 0, len(tokens))
	for i := range tokens {
		rows = append(rows, tokenRow(&tokens[i]))
	}
	if len(rows) > 0 {
		if err := r.book.Update(SheetTokens, 2, rows); err != nil {
			return err
		}
	}
	return r.book.Clear(SheetTokens, 2+len(rows))
}

// DirectoryRepo directorio email → rol sobre la hoja Directorio.
type DirectoryRepo struct {
	book *Workbook
}

// NewDirectoryRepository construye el adaptador del directorio.
func NewDirectoryRepository(book *Workbook) *DirectoryRepo {
	return &DirectoryRepo{book: book}
}

// RoleByEmail compara el email (case-insensitive, trimmed) contra la primera
// columna del directorio y devuelve el rol en minúsculas, o "" si no aparece.
// Un usuario registrado sin rol explícito recibe el rol por defecto.
func (r *DirectoryRepo) RoleByEmail(email string) (string, error) {
	v, err := r.book.HeaderView(SheetDirectory)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(strings.TrimSpace(email))
	for _, row := range v.Data {
		got := strings.ToLower(strings.TrimSpace(v.Get(row, "Email", "")))
		if got != "" && got == want {
			role := strings.ToLower(strings.TrimSpace(v.Get(row, "Rol", "")))
			if role == "" {
				role = entity.RoleUser
			}
			return role, nil
		}
	}
	return "", nil
}

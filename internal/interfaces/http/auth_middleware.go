package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/pkg/jwt"
)

// Fiber Locals anahtarları.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// SessionUsers token sahibini kalıcı katmandan yükler.
type SessionUsers interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware JWT'yi Authorization: Bearer başlığından, yoksa oturum çerezinden okur.
// Token sahibi her istekte veritabanından yüklenir: silinmiş, pasif ya da başka şirkete
// taşınmış kullanıcı 401 alır. Rol token'dan değil kayıttan okunur.
func AuthMiddleware(jwtSecret, cookieName string, users SessionUsers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerOrCookie(c, cookieName)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "biçim: Bearer <token>"})
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "oturum açmanız gerekiyor"})
		}
		id, err := jwt.Verify(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token geçersiz ya da süresi dolmuş"})
		}
		user, err := users.GetByID(c.Context(), id.UserID)
		if err != nil {
			return writeError(c, err)
		}
		if !sessionValid(user, id) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_REVOKED", Message: "oturum artık geçerli değil, tekrar giriş yapın"})
		}
		id.Role = user.Role
		setIdentity(c, id)
		return c.Next()
	}
}

func sessionValid(u *entity.User, id jwt.Identity) bool {
	return u != nil && u.Status == entity.UserActive && u.CompanyID == id.CompanyID
}

// bearerOrCookie token'ı döner. Başlık var ama biçimi bozuksa ok=false.
func bearerOrCookie(c *fiber.Ctx, cookieName string) (string, bool) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	if cookieName != "" {
		return strings.TrimSpace(c.Cookies(cookieName)), true
	}
	return "", true
}

// RequireRole rol listesinden birine sahip olmayanı 403 ile durdurur.
// AuthMiddleware'den sonra kullanılmalıdır.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token rol bilgisi içermiyor"})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "bu işlem için yetkiniz yok"})
		}
		return c.Next()
	}
}

// RequirePermission rolün yetki haritasında perm yoksa 403 döner.
func RequirePermission(perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token rol bilgisi içermiyor"})
		}
		if !entity.HasPermission(role, perm) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "bu işlem için yetkiniz yok: " + perm})
		}
		return c.Next()
	}
}

// GetUserID AuthMiddleware sonrası kullanıcı kimliği.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID AuthMiddleware sonrası şirket kimliği.
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole AuthMiddleware sonrası rol.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// actor use case'lere geçirilen istek sahibi.
func actor(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{
		UserID:    GetUserID(c),
		CompanyID: GetCompanyID(c),
		Role:      GetRole(c),
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// OptionalAuth geçerli bir oturum varsa Locals'ı doldurur, yoksa isteği anonim geçirir.
func OptionalAuth(jwtSecret, cookieName string, users SessionUsers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerOrCookie(c, cookieName)
		if !ok || tokenString == "" {
			return c.Next()
		}
		id, err := jwt.Verify(jwtSecret, tokenString)
		if err != nil {
			return c.Next()
		}
		user, err := users.GetByID(c.Context(), id.UserID)
		if err != nil {
			return writeError(c, err)
		}
		if sessionValid(user, id) {
			id.Role = user.Role
			setIdentity(c, id)
		}
		return c.Next()
	}
}

func setIdentity(c *fiber.Ctx, id jwt.Identity) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalCompanyID, id.CompanyID)
	c.Locals(LocalRole, id.Role)
}

package guard

import (
	"context"
	"errors"
	"net/http"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/token"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
)

// Gate adalah area akses yang dijaga. Hanya ada dua gate: area admin
// (ADMIN/OWNER) dan area karyawan aktif (USER dengan karyawan berstatus AKTIF).
type Gate string

const (
	GateAdminOrOwner   Gate = "admin_area"
	GateActiveEmployee Gate = "employee_area"

	// GateAuthenticated hanya memverifikasi token, tanpa pengecekan role.
	GateAuthenticated Gate = ""
)

var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrInactiveEmployee = apperror.New(
		apperror.CodeForbidden,
		"inactive employee",
		http.StatusForbidden,
	)
)

// Policy role → gate bersifat statis; tiga role sistem tidak bisa
// dikonfigurasi per tenant.
const casbinModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

type EmployeeInfo struct {
	ID       string
	NIP      string
	FullName string
	Status   string
}

// EmployeeResolver mencari karyawan milik sebuah user.
// Diimplementasikan oleh package employee agar guard tidak bergantung balik.
type EmployeeResolver interface {
	FindByUserID(ctx context.Context, userID string) (*EmployeeInfo, error)
}

type TokenVerifier interface {
	Verify(tokenString string) (token.Claims, error)
}

type Identity struct {
	UserID   string
	Role     string
	Employee *EmployeeInfo
}

type Guard struct {
	verifier  TokenVerifier
	employees EmployeeResolver
	enforcer  *casbin.Enforcer
	logger    *zap.Logger
}

func New(verifier TokenVerifier, employees EmployeeResolver, logger ...*zap.Logger) (*Guard, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleAdmin, string(GateAdminOrOwner)},
		{RoleOwner, string(GateAdminOrOwner)},
		{RoleUser, string(GateActiveEmployee)},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1]); err != nil {
			return nil, err
		}
	}

	l := zap.L().Named("guard")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("guard")
	}
	return &Guard{
		verifier:  verifier,
		employees: employees,
		enforcer:  enforcer,
		logger:    l,
	}, nil
}

// Authorize menjalankan empat langkah pengecekan yang dulu diduplikasi
// di setiap route: token ada, token valid, role cocok dengan gate, dan
// (untuk gate karyawan) karyawan ada dan berstatus AKTIF. Read-only.
func (g *Guard) Authorize(ctx context.Context, tokenString string, gate Gate) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrUnauthenticated
	}

	claims, err := g.verifier.Verify(tokenString)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}

	id := Identity{UserID: claims.UserID, Role: claims.Role}
	if gate == GateAuthenticated {
		return id, nil
	}

	allowed, err := g.enforcer.Enforce(claims.Role, string(gate))
	if err != nil {
		g.logger.Error("enforce failed",
			zap.String("role", claims.Role),
			zap.String("gate", string(gate)),
			zap.Error(err),
		)
		return Identity{}, apperror.ErrInternal
	}
	if !allowed {
		g.logger.Warn("gate denied",
			zap.String("user_id", claims.UserID),
			zap.String("role", claims.Role),
			zap.String("gate", string(gate)),
		)
		return Identity{}, ErrForbidden
	}

	if gate == GateActiveEmployee {
		emp, err := g.employees.FindByUserID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Identity{}, ErrInactiveEmployee
			}
			return Identity{}, err
		}
		if emp == nil || emp.Status != "AKTIF" {
			return Identity{}, ErrInactiveEmployee
		}
		id.Employee = emp
	}

	return id, nil
}

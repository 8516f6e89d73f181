package guard

import (
	"context"
	"testing"
	"time"

	"go-absensi/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeResolver struct {
	findByUserIDFn func(ctx context.Context, userID string) (*EmployeeInfo, error)
}

func (f *fakeResolver) FindByUserID(ctx context.Context, userID string) (*EmployeeInfo, error) {
	return f.findByUserIDFn(ctx, userID)
}

func newTestGuard(t *testing.T, resolver EmployeeResolver) (*Guard, *token.Issuer) {
	t.Helper()
	issuer := token.NewIssuer("test-secret", time.Hour)
	g, err := New(issuer, resolver)
	assert.NoError(t, err)
	return g, issuer
}

func TestGuard_NoToken(t *testing.T) {
	g, _ := newTestGuard(t, &fakeResolver{})

	_, err := g.Authorize(context.Background(), "", GateAdminOrOwner)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGuard_InvalidToken(t *testing.T) {
	g, _ := newTestGuard(t, &fakeResolver{})

	_, err := g.Authorize(context.Background(), "not-a-token", GateAdminOrOwner)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGuard_AdminGate(t *testing.T) {
	g, issuer := newTestGuard(t, &fakeResolver{})
	userID := uuid.New().String()

	for _, role := range []string{RoleAdmin, RoleOwner} {
		signed, _ := issuer.Issue(userID, role)
		id, err := g.Authorize(context.Background(), signed, GateAdminOrOwner)
		assert.NoError(t, err)
		assert.Equal(t, userID, id.UserID)
		assert.Equal(t, role, id.Role)
		assert.Nil(t, id.Employee)
	}
}

func TestGuard_AdminGate_RejectsUser(t *testing.T) {
	g, issuer := newTestGuard(t, &fakeResolver{})

	signed, _ := issuer.Issue(uuid.New().String(), RoleUser)
	_, err := g.Authorize(context.Background(), signed, GateAdminOrOwner)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGuard_EmployeeGate_RejectsAdmin(t *testing.T) {
	g, issuer := newTestGuard(t, &fakeResolver{})

	signed, _ := issuer.Issue(uuid.New().String(), RoleAdmin)
	_, err := g.Authorize(context.Background(), signed, GateActiveEmployee)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGuard_EmployeeGate_Active(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New().String()
	resolver := &fakeResolver{
		findByUserIDFn: func(ctx context.Context, uid string) (*EmployeeInfo, error) {
			assert.Equal(t, userID, uid)
			return &EmployeeInfo{ID: employeeID, Status: "AKTIF", FullName: "Budi"}, nil
		},
	}
	g, issuer := newTestGuard(t, resolver)

	signed, _ := issuer.Issue(userID, RoleUser)
	id, err := g.Authorize(context.Background(), signed, GateActiveEmployee)
	assert.NoError(t, err)
	assert.NotNil(t, id.Employee)
	assert.Equal(t, employeeID, id.Employee.ID)
}

func TestGuard_EmployeeGate_Inactive(t *testing.T) {
	resolver := &fakeResolver{
		findByUserIDFn: func(ctx context.Context, uid string) (*EmployeeInfo, error) {
			return &EmployeeInfo{ID: uuid.New().String(), Status: "NONAKTIF"}, nil
		},
	}
	g, issuer := newTestGuard(t, resolver)

	signed, _ := issuer.Issue(uuid.New().String(), RoleUser)
	_, err := g.Authorize(context.Background(), signed, GateActiveEmployee)
	assert.ErrorIs(t, err, ErrInactiveEmployee)
}

func TestGuard_EmployeeGate_NoEmployeeRecord(t *testing.T) {
	resolver := &fakeResolver{
		findByUserIDFn: func(ctx context.Context, uid string) (*EmployeeInfo, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	g, issuer := newTestGuard(t, resolver)

	signed, _ := issuer.Issue(uuid.New().String(), RoleUser)
	_, err := g.Authorize(context.Background(), signed, GateActiveEmployee)
	assert.ErrorIs(t, err, ErrInactiveEmployee)
}

func TestGuard_AuthenticatedOnly(t *testing.T) {
	g, issuer := newTestGuard(t, &fakeResolver{})
	userID := uuid.New().String()

	signed, _ := issuer.Issue(userID, RoleUser)
	id, err := g.Authorize(context.Background(), signed, GateAuthenticated)
	assert.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
}

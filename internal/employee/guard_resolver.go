package employee

import (
	"context"

	"go-absensi/internal/guard"
)

// guardResolver mengadaptasi Repository ke guard.EmployeeResolver
// supaya guard tidak perlu mengimpor package ini.
type guardResolver struct {
	repo Repository
}

func NewGuardResolver(repo Repository) guard.EmployeeResolver {
	return &guardResolver{repo: repo}
}

func (r *guardResolver) FindByUserID(ctx context.Context, userID string) (*guard.EmployeeInfo, error) {
	emp, err := r.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &guard.EmployeeInfo{
		ID:       emp.ID.String(),
		NIP:      emp.NIP,
		FullName: emp.FullName,
		Status:   emp.Status,
	}, nil
}

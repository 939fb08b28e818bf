package principal

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type ListUsersQuery struct {
	Kind     principal.Kind
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

type ListUsersResult struct {
	Users    []principal.Principal
	Total    int64
	Page     int
	PageSize int
}

// ListUsersUseCase pages through operators or customers
type ListUsersUseCase struct {
	operators principal.OperatorRepository
	customers principal.CustomerRepository
}

func NewListUsersUseCase(operators principal.OperatorRepository, customers principal.CustomerRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		operators: operators,
		customers: customers,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	filter := principal.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
		Search:   q.Search,
		IsActive: q.IsActive,
	}

	result := &ListUsersResult{Page: p.Page, PageSize: p.PageSize}

	switch q.Kind {
	case principal.KindOperator:
		rows, total, err := uc.operators.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list operators: %w", err)
		}
		for _, r := range rows {
			result.Users = append(result.Users, r)
		}
		result.Total = total
	case principal.KindCustomer:
		rows, total, err := uc.customers.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list customers: %w", err)
		}
		for _, r := range rows {
			result.Users = append(result.Users, r)
		}
		result.Total = total
	default:
		return nil, fmt.Errorf("unknown principal kind %q", q.Kind)
	}

	return result, nil
}
